package api

import (
	"fmt"

	"github.com/clauseguard/clauseguard/internal/analysis"
	"github.com/clauseguard/clauseguard/internal/chat"
	"github.com/clauseguard/clauseguard/internal/contracts"
	"github.com/clauseguard/clauseguard/internal/jobs"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Contracts contracts.System
	Jobs      jobs.System
	Chat      chat.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	client, err := analysis.NewClient(analysis.Config{
		APIKey:  runtime.Analyzer.APIKey,
		BaseURL: runtime.Analyzer.BaseURL,
		Model:   runtime.Analyzer.Model,
	}, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("analysis client: %w", err)
	}

	contractSystem := contracts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	jobSystem := jobs.New(
		client,
		contractSystem,
		runtime.Storage,
		runtime.Logger,
		jobs.Options{
			Workers:     runtime.Jobs.Workers,
			QueueSize:   runtime.Jobs.QueueSize,
			MaxJobs:     runtime.Jobs.MaxJobs,
			HardTimeout: runtime.Jobs.HardTimeoutDuration(),
			SoftTimeout: runtime.Jobs.SoftTimeoutDuration(),
		},
	)

	chatSystem := chat.New(
		runtime.Database.Connection(),
		contractSystem,
		client,
		runtime.Logger,
	)

	return &Domain{
		Contracts: contractSystem,
		Jobs:      jobSystem,
		Chat:      chatSystem,
	}, nil
}
