package vectorstore

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/partnerforge/ragengine/v1/section"
)

type testLogger struct{}

func (testLogger) Info(string, error, ...map[string]interface{})  {}
func (testLogger) Debug(string, error, ...map[string]interface{}) {}
func (testLogger) Warn(string, error, ...map[string]interface{})  {}
func (testLogger) Error(string, error, ...map[string]interface{}) {}

// qdrantContainer wraps a containerized Qdrant for integration tests.
type qdrantContainer struct {
	testcontainers.Container
	Host string
	Port int
}

func setupQdrantContainer(ctx context.Context) (*qdrantContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portBindings := nat.PortMap{
		"6334/tcp": []nat.PortBinding{{HostPort: strconv.Itoa(port)}},
	}

	req := testcontainers.ContainerRequest{
		Image: "qdrant/qdrant:v1.11.0",
		Env: map[string]string{
			"QDRANT__SERVICE__GRPC_PORT": "6334",
		},
		ExposedPorts: []string{"6334/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForListeningPort("6334/tcp").WithStartupTimeout(60 * time.Second),
	}

	instance, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start qdrant container: %w", err)
	}

	host, err := instance.Host(ctx)
	if err != nil {
		_ = instance.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := instance.MappedPort(ctx, "6334")
	if err != nil {
		_ = instance.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	// Give the gRPC service a moment after the port opens.
	time.Sleep(2 * time.Second)

	return &qdrantContainer{
		Container: instance,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = addr.Close() }()

	return addr.Addr().(*net.TCPAddr).Port, nil
}

func testSection(entity string, t section.Type, content string, perf float64, page int, date time.Time) section.Section {
	return section.Section{
		Entity:           entity,
		Type:             t,
		Content:          content,
		DocumentDate:     date,
		PerformanceScore: perf,
		Metadata: section.Metadata{
			Page:     page,
			FileName: entity + ".pdf",
			Industry: "education",
		},
	}
}

// axisVector returns a unit vector along the given axis so test points are
// either identical (cosine 1) or orthogonal (cosine 0).
func axisVector(dim, axis int) []float32 {
	v := make([]float32, dim)
	v[axis%dim] = 1
	return v
}

func TestVectorStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	instance, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := instance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using Qdrant on %s:%d", instance.Host, instance.Port)

	const dim = 8
	cfg := DefaultConfig()
	cfg.Endpoint = instance.Host
	cfg.Port = instance.Port
	cfg.Collection = "test_sections"
	cfg.Dimension = dim
	cfg.CheckCompatibility = false
	cfg.Timeout = 10 * time.Second

	client, err := NewClient(cfg, testLogger{})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.Initialize(ctx))
	require.Equal(t, CollectionReady, client.State())

	now := time.Now().UTC().Truncate(time.Second)

	t.Run("UpsertSearchRoundTrip", func(t *testing.T) {
		s := testSection("Acme Foundation", section.Metrics,
			"10,000+ students reached across 40 schools.", 0.9, 4, now)

		point := Point{
			ID:      section.PointID(s),
			Vector:  axisVector(dim, 0),
			Payload: section.ToPayload(s),
		}
		result := client.BatchUpsert(ctx, []Point{point})
		require.Empty(t, result.Failed)
		require.Equal(t, []string{point.ID}, result.Succeeded)

		time.Sleep(1 * time.Second) // allow indexing

		results, err := client.Search(ctx, SearchParams{
			Vector: axisVector(dim, 0),
			Limit:  5,
		})
		require.NoError(t, err)
		require.NotEmpty(t, results)

		assert.Equal(t, point.ID, results[0].ID)
		assert.InDelta(t, 1.0, float64(results[0].Score), 1e-4)

		restored, err := results[0].Section()
		require.NoError(t, err)
		assert.Equal(t, s, restored)
	})

	t.Run("HardPerformanceFilter", func(t *testing.T) {
		dates := now.AddDate(0, -1, 0)
		sections := []section.Section{
			testSection("High Corp", section.ValueProposition, "Why partner with us: measurable value.", 0.9, 1, dates),
			testSection("Mid Corp", section.ValueProposition, "Why partner with us: decent value.", 0.5, 1, dates),
			testSection("Low Corp", section.ValueProposition, "Why partner with us: some value.", 0.3, 1, dates),
		}
		points := make([]Point, len(sections))
		for i, s := range sections {
			points[i] = Point{
				ID:      section.PointID(s),
				Vector:  axisVector(dim, 1),
				Payload: section.ToPayload(s),
			}
		}
		result := client.BatchUpsert(ctx, points)
		require.Empty(t, result.Failed)

		time.Sleep(1 * time.Second)

		results, err := client.HybridSearch(ctx, HybridParams{
			Vector:              axisVector(dim, 1),
			SectionTypes:        []section.Type{section.ValueProposition},
			MinPerformanceScore: 0.6,
			Keywords:            []string{"value"},
			BoostRecency:        true,
			Limit:               10,
		})
		require.NoError(t, err)

		// The 0.5 and 0.3 documents are excluded entirely, not demoted.
		require.Len(t, results, 1)
		assert.Equal(t, "High Corp", asPayloadString(results[0].Payload[section.FieldEntity]))
		assert.Greater(t, results[0].FinalScore, results[0].SemanticScore)
		assert.Greater(t, results[0].KeywordBoost, 0.0)
		assert.Greater(t, results[0].RecencyBoost, 0.0)
	})

	t.Run("DimensionValidation", func(t *testing.T) {
		_, err := client.Search(ctx, SearchParams{
			Vector: axisVector(dim+1, 0),
			Limit:  1,
		})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("UpsertIsIdempotent", func(t *testing.T) {
		s := testSection("Repeat Org", section.CTA, "Contact us to get started today.", 0.7, 2, now)
		point := Point{ID: section.PointID(s), Vector: axisVector(dim, 2), Payload: section.ToPayload(s)}

		info1, err := client.GetCollectionInfo(ctx)
		require.NoError(t, err)

		require.Empty(t, client.BatchUpsert(ctx, []Point{point}).Failed)
		require.Empty(t, client.BatchUpsert(ctx, []Point{point}).Failed)
		time.Sleep(1 * time.Second)

		info2, err := client.GetCollectionInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, info1.Points+1, info2.Points, "re-upserting the same id must not duplicate")
	})

	t.Run("Delete", func(t *testing.T) {
		s := testSection("Gone Org", section.About, "Our story begins in 2012.", 0.6, 3, now)
		point := Point{ID: section.PointID(s), Vector: axisVector(dim, 3), Payload: section.ToPayload(s)}

		require.Empty(t, client.BatchUpsert(ctx, []Point{point}).Failed)
		time.Sleep(1 * time.Second)

		require.NoError(t, client.Delete(ctx, []string{point.ID}))
		time.Sleep(1 * time.Second)

		results, err := client.Search(ctx, SearchParams{Vector: axisVector(dim, 3), Limit: 5, ScoreThreshold: 0.99})
		require.NoError(t, err)
		for _, r := range results {
			assert.NotEqual(t, point.ID, r.ID)
		}
	})

	t.Run("CollectionInfo", func(t *testing.T) {
		info, err := client.GetCollectionInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, "test_sections", info.Name)
		assert.Equal(t, dim, info.Dimension)
		assert.Equal(t, "Cosine", info.Distance)
	})
}
