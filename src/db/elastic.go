package db

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"

	"Go_Discovery/src/types"
)

const scrollPageSize = 500

// restaurantDoc is the indexed form of a catalog record. Seq keeps the
// catalog order since search hits carry none.
type restaurantDoc struct {
	Seq        int               `json:"seq"`
	Blurhash   *string           `json:"blurhash"`
	LaunchDate *string           `json:"launch_date"`
	Location   *elastic.GeoPoint `json:"location"`
	Name       *string           `json:"name"`
	Online     *bool             `json:"online"`
	Popularity *float64          `json:"popularity"`
}

func newRestaurantDoc(seq int, r types.Restaurant) restaurantDoc {
	rec := fromRestaurant(r)
	return restaurantDoc{
		Seq:        seq,
		Blurhash:   rec.Blurhash,
		LaunchDate: rec.LaunchDate,
		Location:   &elastic.GeoPoint{Lat: r.Location.Lat, Lon: r.Location.Lon},
		Name:       rec.Name,
		Online:     rec.Online,
		Popularity: rec.Popularity,
	}
}

func (d restaurantDoc) record() restaurantRecord {
	rec := restaurantRecord{
		Blurhash:   d.Blurhash,
		LaunchDate: d.LaunchDate,
		Name:       d.Name,
		Online:     d.Online,
		Popularity: d.Popularity,
	}
	if d.Location != nil {
		rec.Location = []float64{d.Location.Lat, d.Location.Lon}
	}
	return rec
}

type ElasticStore struct {
	Client *elastic.Client
	Index  string
	logger *zap.Logger
}

func NewElasticStore(url, index string, logger *zap.Logger) (*ElasticStore, error) {
	client, err := elastic.NewClient(elastic.SetURL(url), elastic.SetSniff(false))
	if err != nil {
		return nil, fmt.Errorf("elastic: create client: %w", err)
	}
	return &ElasticStore{Client: client, Index: index, logger: logger.Named("elastic")}, nil
}

// Restaurants scrolls through the whole index in catalog order.
func (es *ElasticStore) Restaurants(ctx context.Context) ([]types.Restaurant, error) {
	scroll := es.Client.Scroll(es.Index).
		Query(elastic.NewMatchAllQuery()).
		Sort("seq", true).
		Size(scrollPageSize)
	defer func() {
		if err := scroll.Clear(context.Background()); err != nil {
			es.logger.Debug("clear scroll", zap.Error(err))
		}
	}()

	var records []restaurantRecord
	for {
		res, err := scroll.Do(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: elastic scroll %q: %v", types.ErrCatalogUnavailable, es.Index, err)
		}

		for _, hit := range res.Hits.Hits {
			var doc restaurantDoc
			if err := json.Unmarshal(hit.Source, &doc); err != nil {
				return nil, fmt.Errorf("%w: hit %s: %v", types.ErrMalformedRecord, hit.Id, err)
			}
			records = append(records, doc.record())
		}
	}

	return toRestaurants(records)
}

// CreateIndexWithMapping creates the index from a mapping file unless it
// already exists.
func (es *ElasticStore) CreateIndexWithMapping(ctx context.Context, schemaPath string) error {
	exists, err := es.Client.IndexExists(es.Index).Do(ctx)
	if err != nil {
		return fmt.Errorf("elastic: check index %q: %w", es.Index, err)
	}
	if exists {
		es.logger.Info("index already exists", zap.String("index", es.Index))
		return nil
	}

	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("elastic: read schema: %w", err)
	}

	createIndex, err := es.Client.CreateIndex(es.Index).BodyString(string(schemaBytes)).Do(ctx)
	if err != nil {
		return fmt.Errorf("elastic: create index %q: %w", es.Index, err)
	}
	if !createIndex.Acknowledged {
		es.logger.Warn("CreateIndex was not acknowledged, check that timeout value is correct", zap.String("index", es.Index))
	}

	es.logger.Info("index created", zap.String("index", es.Index))
	return nil
}

// Seed bulk indexes the catalog. Document ids are the catalog positions, so
// seeding twice overwrites instead of duplicating.
func (es *ElasticStore) Seed(ctx context.Context, restaurants []types.Restaurant) error {
	if len(restaurants) == 0 {
		return nil
	}

	bulkRequest := es.Client.Bulk().Index(es.Index).Refresh("true")
	for i, r := range restaurants {
		req := elastic.NewBulkIndexRequest().Id(strconv.Itoa(i)).Doc(newRestaurantDoc(i, r))
		bulkRequest = bulkRequest.Add(req)
	}

	bulkResponse, err := bulkRequest.Do(ctx)
	if err != nil {
		return fmt.Errorf("elastic: bulk index: %w", err)
	}

	failed := bulkResponse.Failed()
	for _, item := range failed {
		if item.Error != nil {
			es.logger.Error("failed to index restaurant", zap.String("id", item.Id), zap.String("reason", item.Error.Reason))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("elastic: %d of %d restaurants failed to index", len(failed), len(restaurants))
	}

	es.logger.Info("catalog seeded", zap.String("index", es.Index), zap.Int("restaurants", len(restaurants)))
	return nil
}

func (es *ElasticStore) Close() error {
	es.Client.Stop()
	return nil
}
