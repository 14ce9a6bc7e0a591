package lookup

import (
	"github.com/travigo/tickets/pkg/config"
	"github.com/travigo/tickets/pkg/railapi"
	"github.com/travigo/tickets/pkg/stations"
)

// NewService wires the configured station table to the remote schedule
// client described by cfg.
func NewService(cfg config.Config) (*Service, error) {
	directory, err := stations.LoadConfigured(cfg.Stations)
	if err != nil {
		return nil, err
	}

	return &Service{
		Stations:  directory,
		Schedules: railapi.NewClient(cfg.Remote),
	}, nil
}
