package scheduler

import "errors"

var ErrNotPending = errors.New("shipment is not awaiting assignment")
