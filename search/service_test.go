package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"culinarycompass/geo"
	"culinarycompass/hours"
	"culinarycompass/models"
)

type staticCatalog []models.Restaurant

func (c staticCatalog) Restaurants() []models.Restaurant { return c }

func TestServiceSearchUsesInjectedClock(t *testing.T) {
	r := restaurant(1, "Bún Đêm", 10.7769, 106.7009)
	r.OpenHours = "22:00 - 02:00"
	svc := NewService(staticCatalog{r}, FixedClock(at(23, 30)))

	q := models.NewSearchQuery(benThanh)
	q.OpenNow = true
	results, err := svc.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, hours.LabelOpen, results[0].OpenStatusText)

	svc = NewService(staticCatalog{r}, FixedClock(at(12, 0)))
	results, err = svc.Search(context.Background(), q)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestServiceSearchRejectsInvalidLocation(t *testing.T) {
	svc := NewService(staticCatalog{}, FixedClock(at(12, 0)))

	_, err := svc.Search(context.Background(), models.NewSearchQuery(models.Coordinates{Latitude: 91, Longitude: 0}))
	require.Error(t, err)
	require.True(t, errors.Is(err, geo.ErrInvalidCoordinates))
}
