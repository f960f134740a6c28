package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/olivere/elastic/v7"

	"culinarycompass/models"
)

const elasticPageSize = 500

// ElasticSource reads the catalog from an Elasticsearch index whose
// documents use the same shape as the JSON catalog file.
type ElasticSource struct {
	Client *elastic.Client
	Index  string
}

// NewElasticSource prepares a client for the cluster at url. No request is
// made until Load, so an unreachable cluster surfaces as a load failure.
func NewElasticSource(url, index string) (*ElasticSource, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("create elastic client: %w", err)
	}
	return &ElasticSource{Client: client, Index: index}, nil
}

func (es *ElasticSource) Name() string { return "elasticsearch" }

// Load scrolls through every document of the index ordered by id.
func (es *ElasticSource) Load(ctx context.Context) ([]models.Restaurant, error) {
	scroll := es.Client.Scroll(es.Index).
		Query(elastic.NewMatchAllQuery()).
		Sort("id", true).
		Size(elasticPageSize)
	defer scroll.Clear(context.Background())

	var restaurants []models.Restaurant
	for {
		res, err := scroll.Do(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scroll index %s: %w", es.Index, err)
		}
		page, err := decodeHits(res.Hits.Hits)
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", es.Index, err)
		}
		restaurants = append(restaurants, page...)
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	return restaurants, nil
}

func decodeHits(hits []*elastic.SearchHit) ([]models.Restaurant, error) {
	restaurants := make([]models.Restaurant, 0, len(hits))
	for _, hit := range hits {
		r, err := DecodeRecord(hit.Source)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", hit.Id, err)
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, nil
}
