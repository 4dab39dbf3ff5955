package services

import (
	"context"
	"time"

	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/types"
	"go.uber.org/zap"
)

const healthCheckTimeout = 3 * time.Second

type HealthService struct {
	store     store.ContactStore
	driver    string
	notifier  *EmailNotifier
	version   string
	startTime time.Time
	log       *zap.SugaredLogger
}

func NewHealthService(contactStore store.ContactStore, driver string, notifier *EmailNotifier, version string) *HealthService {
	return &HealthService{
		store:     contactStore,
		driver:    driver,
		notifier:  notifier,
		version:   version,
		startTime: time.Now(),
		log:       logger.GetLogger(),
	}
}

// CheckHealth reports DOWN when the contact store is unreachable. A disabled
// notifier only degrades the result.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	storeStatus := h.checkStore(ctx)
	components["store"] = storeStatus
	if storeStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	emailStatus := h.checkEmail()
	components["email"] = emailStatus
	if emailStatus.Status == types.HealthStatusDegraded && overallStatus != types.HealthStatusDown {
		overallStatus = types.HealthStatusDegraded
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

func (h *HealthService) checkStore(ctx context.Context) types.HealthComponent {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Errorw("Contact store health check failed", "driver", h.driver, "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: h.driver + " store unreachable",
		}
	}
	return types.HealthComponent{
		Status:  types.HealthStatusUp,
		Details: h.driver,
	}
}

func (h *HealthService) checkEmail() types.HealthComponent {
	if h.notifier == nil || !h.notifier.Enabled() {
		return types.HealthComponent{
			Status:  types.HealthStatusDegraded,
			Details: "notifications disabled",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
