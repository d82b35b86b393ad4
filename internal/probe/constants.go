package probe

import (
	"errors"
	"time"
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
	DefaultWorkers          = 4
	DefaultTimeout          = 10 * time.Second
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0640
)

// Check names used in failures.
const (
	CheckStatus      = "status"
	CheckDecode      = "decode"
	CheckCount       = "count"
	CheckSubset      = "subset"
	CheckRegion      = "region"
	CheckBand        = "band"
	CheckComplete    = "complete"
	CheckOrder       = "order"
	CheckIdempotent  = "idempotent"
	CheckSummary     = "summary"
	CheckNoData      = "no_data"
	CheckDetail      = "detail"
	CheckQueryEchoed = "query_echo"
)

// ErrContractViolated is returned by Run when at least one check failed.
var ErrContractViolated = errors.New("probe: contract violated")
