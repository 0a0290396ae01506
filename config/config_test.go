package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kenburns "github.com/stateforward/go-kenburns"
	"github.com/stateforward/go-kenburns/config"
	"github.com/stateforward/go-kenburns/loop"
	"github.com/stateforward/go-kenburns/style"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 2000*time.Millisecond, cfg.FadeDuration)
	assert.Equal(t, 4000*time.Millisecond, cfg.AnimationDuration)
	assert.True(t, cfg.Randomize)
	assert.False(t, cfg.Paused)
	assert.Len(t, cfg.Effects, 20)
	assert.ErrorIs(t, cfg.Validate(), config.ErrNoImages)
}

func TestLoadFile(t *testing.T) {
	cfg, err := config.Load("testdata/slideshow.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"beach.jpg", "forest.jpg"}, cfg.Images)
	assert.Equal(t, 1500*time.Millisecond, cfg.FadeDuration)
	assert.Equal(t, 3*time.Second, cfg.AnimationDuration)
	assert.False(t, cfg.Randomize)
	assert.Equal(t, []string{"zoom-in", "pan-w"}, cfg.Effects)
	assert.Equal(t, "webkit", cfg.Vendor)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "ease-out", cfg.Curve, "unset keys keep their defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KENBURNS_IMAGES", "one.jpg,two.jpg,three.jpg")
	t.Setenv("KENBURNS_FADE_DURATION", "250ms")
	t.Setenv("KENBURNS_PAUSED", "true")

	cfg, err := config.Load("testdata/slideshow.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"one.jpg", "two.jpg", "three.jpg"}, cfg.Images)
	assert.Equal(t, 250*time.Millisecond, cfg.FadeDuration)
	assert.Equal(t, 3*time.Second, cfg.AnimationDuration)
	assert.True(t, cfg.Paused)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load("testdata/missing.yaml")
	assert.ErrorIs(t, err, config.ErrRead)

	_, err = config.Load("testdata/invalid.yaml")
	assert.ErrorIs(t, err, config.ErrParse)

	_, err = config.Load("")
	assert.ErrorIs(t, err, config.ErrNoImages)
}

func TestValidate(t *testing.T) {
	valid := config.Default()
	valid.Images = []string{"a.jpg"}
	require.NoError(t, valid.Validate())

	cfg := valid
	cfg.Effects = nil
	assert.ErrorIs(t, cfg.Validate(), config.ErrNoEffects)

	cfg = valid
	cfg.FadeDuration = -time.Second
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidDuration)

	cfg = valid
	cfg.AnimationDuration = -time.Second
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidDuration)

	cfg = valid
	cfg.FadeDuration = 0
	cfg.AnimationDuration = 0
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidDuration)

	cfg = valid
	cfg.FadeDuration = 0
	assert.NoError(t, cfg.Validate(), "an instant fade still dwells")

	cfg = valid
	cfg.Vendor = "ms"
	err := cfg.Validate()
	assert.ErrorIs(t, err, config.ErrUnknownVendor)
	assert.ErrorIs(t, err, style.ErrUnknownVendor)
}

func TestOptions(t *testing.T) {
	cfg, err := config.Load("testdata/slideshow.yaml")
	require.NoError(t, err)

	scheduler := loop.NewVirtual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	container := style.NewNode(scheduler)
	show := kenburns.New(container, cfg.Images, scheduler, cfg.Options()...)
	assert.Equal(t, 2, show.Len())
	assert.Equal(t, "6000ms", show.Slide(0).Get("WebkitAnimationDuration"))

	scheduler.Drain()
	assert.Equal(t, "-webkit-opacity 1500ms ease-out", show.Slide(0).Get("WebkitTransition"))
	assert.True(t, show.Slide(0).HasMarker("zoom-in"))
}
