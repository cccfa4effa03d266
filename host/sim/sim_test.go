package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funkbake/config"
	"funkbake/core"
)

func TestSimulationDefaultDeployment(t *testing.T) {
	s := New(config.Default(), 0x0F)
	reports := s.Run(2)

	require.Len(t, reports, 2)
	for _, r := range reports {
		assert.Equal(t, "DF0MU ", r.Message)
		assert.Equal(t, uint32(60000), r.TotalMs)
		assert.False(t, r.Overrun)
	}
	assert.Equal(t, uint64(120000), s.Clock.Now())
	assert.False(t, s.Recorder.Level(core.ChannelRelay), "trailer releases the relay")
}

func TestSimulationSOS(t *testing.T) {
	cfg := config.Default()
	cfg.Presets = []string{"SOS"}
	cfg.DitMs = 200
	s := New(cfg, core.EncodeSelector(0))

	r := s.Run(1)[0]
	assert.Equal(t, uint32(52600), r.IdleMs)

	// Message keys 3000 ms; the relay adds the idle marker on top
	assert.Equal(t, uint64(3000), s.Recorder.OnTime(core.ChannelOpenCollector, 60000))
	assert.Equal(t, uint64(3000+52600), s.Recorder.OnTime(core.ChannelRelay, 60000))

	edges := s.Recorder.Edges()
	last := edges[len(edges)-1]
	assert.Equal(t, Edge{AtMs: 58600, Channel: core.ChannelRelay, On: false}, last)
}

func TestRecorderDropsRepeatedLevels(t *testing.T) {
	clock := core.NewVirtualClock()
	rec := NewRecorder(clock)

	rec.Set(core.ChannelRelay, false)
	rec.Set(core.ChannelRelay, true)
	clock.WaitMs(100)
	rec.Set(core.ChannelRelay, true)
	rec.Set(core.ChannelRelay, false)
	rec.Set(core.NumChannels, true)

	assert.Equal(t, []Edge{
		{AtMs: 0, Channel: core.ChannelRelay, On: true},
		{AtMs: 100, Channel: core.ChannelRelay, On: false},
	}, rec.Edges())
	assert.Equal(t, uint64(100), rec.OnTime(core.ChannelRelay, 1000))
}

func TestOnTimeCountsOpenInterval(t *testing.T) {
	clock := core.NewVirtualClock()
	rec := NewRecorder(clock)
	clock.WaitMs(50)
	rec.Set(core.ChannelOpenCollector, true)

	assert.Equal(t, uint64(150), rec.OnTime(core.ChannelOpenCollector, 200))
	assert.Zero(t, rec.OnTime(core.ChannelRelay, 200))
}

func TestRenderPlan(t *testing.T) {
	assert.Equal(t, "=.===.  ", RenderPlan(core.Encode("A")))
	assert.Equal(t, "      ", RenderPlan(core.Encode("/")))
	assert.Equal(t, ".      ", RenderPlan(core.TrailerPlan()))
	assert.Empty(t, RenderPlan(core.Encode("")))
}
