package httpapi

import (
	"context"

	"jobboard-engine/internal/analytics"
	"jobboard-engine/internal/applications"
	"jobboard-engine/internal/jobs"
	"jobboard-engine/internal/savedjobs"
	"jobboard-engine/internal/users"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Store Pinger

	Jobs         *jobs.Service
	Applications *applications.Service
	SavedJobs    *savedjobs.Service
	Analytics    *analytics.Service
	Users        *users.Service

	Tokens Verifier
}
