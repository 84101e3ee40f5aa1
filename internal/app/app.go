package app

import (
	"time"

	"tracker/internal/gateway/capacity"
	"tracker/internal/handlers/rest/healthcheck_head"
	"tracker/internal/handlers/rest/partner_get"
	"tracker/internal/handlers/rest/partner_post"
	"tracker/internal/handlers/rest/partner_put"
	"tracker/internal/handlers/rest/partner_shipments_get"
	"tracker/internal/handlers/rest/partners_get"
	"tracker/internal/handlers/rest/review_get"
	"tracker/internal/handlers/rest/review_post"
	"tracker/internal/handlers/rest/shipment_cancel_post"
	"tracker/internal/handlers/rest/shipment_get"
	"tracker/internal/handlers/rest/shipment_patch"
	"tracker/internal/handlers/rest/shipment_post"
	"tracker/internal/handlers/rest/shipment_tag_delete"
	"tracker/internal/handlers/rest/shipment_tag_post"
	"tracker/internal/handlers/rest/shipments_get"
	schedulerService "tracker/internal/service/scheduler"
	"tracker/pkg/background"
)

type (
	TokenCleanupInterval time.Duration
	PendingSweepInterval time.Duration
)

type Application struct {
	ServiceShipment   ServiceShipment
	ServicePartner    ServicePartner
	ServiceTag        ServiceTag
	Scheduler         *schedulerService.Scheduler
	CapacityPublisher *capacity.Publisher
	Pinger            healthcheck_head.Pinger
	BackgroundWorkers *background.Worker
}

type ServiceShipment interface {
	shipment_post.Service
	shipment_get.Service
	shipment_patch.Service
	shipment_cancel_post.Service
	shipments_get.Service
	partner_shipments_get.Service
	review_get.Service
	review_post.Service
}

type ServicePartner interface {
	partner_post.Service
	partner_put.Service
	partner_get.Service
	partners_get.Service
}

type ServiceTag interface {
	shipment_tag_post.Service
	shipment_tag_delete.Service
}

// KafkaWorkerApp собирается только поверх Postgres: состояние должно быть общим с API.
type KafkaWorkerApp struct {
	Scheduler *schedulerService.Scheduler
}
