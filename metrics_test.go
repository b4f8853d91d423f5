package hydro_test

import (
	"testing"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"

	"pkg.world.dev/hydro"
	"pkg.world.dev/hydro/assert"
	"pkg.world.dev/hydro/statsd"
)

type countingClient struct {
	*ddstatsd.NoOpClient
	counts map[string]int64
}

func (c *countingClient) Count(name string, value int64, _ []string, _ float64) error {
	c.counts[name] += value
	return nil
}

func TestWorldEmitsCounts(t *testing.T) {
	client := &countingClient{NoOpClient: &ddstatsd.NoOpClient{}, counts: map[string]int64{}}
	statsd.SetClient(client)
	t.Cleanup(func() { statsd.SetClient(nil) })

	world := newWorldForTest(t)
	entities := insertPosRot(t, world)
	insertPosRot(t, world)
	_, err := world.InsertFrom(nil, []hydro.Tuple{{Vel{}}})
	assert.NilError(t, err)
	assert.True(t, world.Delete(entities[0]))
	assert.False(t, world.Delete(entities[0]))

	assert.Equal(t, int64(5), client.counts[statsd.EntitiesCreated])
	assert.Equal(t, int64(1), client.counts[statsd.EntitiesDeleted])
	assert.Equal(t, int64(2), client.counts[statsd.ArchetypesCreated])
}
