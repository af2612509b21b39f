package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"infinite-experiment/shiplog/internal/common"
	"infinite-experiment/shiplog/internal/constants"
	"infinite-experiment/shiplog/internal/db/repositories"
	"infinite-experiment/shiplog/internal/models/entities"

	"github.com/patrickmn/go-cache"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// lookup resolves foreign keys for the duration of one query. Each report
// builds a fresh lookup so nothing is reused across queries.
type lookup struct {
	cache   common.CacheInterface
	ports   *repositories.PortRepository
	vessels *repositories.VesselRepository
}

func newLookup(ports *repositories.PortRepository, vessels *repositories.VesselRepository) *lookup {
	return &lookup{
		cache:   common.NewQueryCache(),
		ports:   ports,
		vessels: vessels,
	}
}

func (l *lookup) port(ctx context.Context, id string) (entities.Port, error) {
	val, err := l.cache.GetOrSet(string(constants.CachePrefixPort)+id, cache.DefaultExpiration, func() (any, error) {
		p, err := l.ports.Resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		return *p, nil
	})
	if err != nil {
		return entities.Port{}, err
	}
	return val.(entities.Port), nil
}

func (l *lookup) vessel(ctx context.Context, imo int64) (entities.Vessel, error) {
	key := string(constants.CachePrefixVessel) + strconv.FormatInt(imo, 10)
	val, err := l.cache.GetOrSet(key, cache.DefaultExpiration, func() (any, error) {
		v, err := l.vessels.Resolve(ctx, imo)
		if err != nil {
			return nil, err
		}
		return *v, nil
	})
	if err != nil {
		return entities.Vessel{}, err
	}
	return val.(entities.Vessel), nil
}
