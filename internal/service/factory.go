package service

import (
	"basegraph.app/hubsync/core/config"
	"basegraph.app/hubsync/internal/mapper"
	"basegraph.app/hubsync/internal/store"
)

// Deps are the collaborators services share. Dedupe, Tracker and Enqueuer
// may be nil where a process does not need them.
type Deps struct {
	Stores     *store.Stores
	TxRunner   TxRunner
	Registry   *mapper.Registry
	Envelopes  EnvelopeDecoder
	Dedupe     DeliveryDeduper
	Membership MembershipChecker
	Tracker    TrackerClient
	Enqueuer   BackfillEnqueuer
}

type Services struct {
	deps Deps
	cfg  config.Config
}

func NewServices(deps Deps, cfg config.Config) *Services {
	if deps.Registry == nil {
		deps.Registry = mapper.NewLinearRegistry()
	}
	return &Services{deps: deps, cfg: cfg}
}

func (s *Services) Ingest() IngestService {
	return NewIngestService(
		s.deps.Stores.Integrations(),
		s.deps.TxRunner,
		s.deps.Registry,
		s.deps.Envelopes,
		s.deps.Dedupe,
		s.cfg.Ingest,
	)
}

func (s *Services) Hub() HubService {
	return NewHubService(s.deps.Stores)
}

func (s *Services) Mappings() MappingService {
	return NewMappingService(s.deps.Stores, s.deps.TxRunner)
}

func (s *Services) Integrations() IntegrationService {
	return NewIntegrationService(s.deps.Stores.Integrations())
}

func (s *Services) Membership() MembershipChecker {
	return s.deps.Membership
}

func (s *Services) Backfill() BackfillService {
	return NewBackfillService(
		s.deps.Stores.Integrations(),
		s.deps.TxRunner,
		s.Ingest(),
		s.deps.Tracker,
		s.deps.Enqueuer,
		s.cfg.Backfill,
	)
}
