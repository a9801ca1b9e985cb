package server

import (
	"context"

	"github.com/preston-bernstein/matchintel-service/internal/refresh"
)

// Controller is the lifecycle surface of the refresh controller the server drives.
type Controller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() refresh.Status
}
