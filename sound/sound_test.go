package sound

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countSamples(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
		require.LessOrEqual(t, total, 1_000_000, "streamer must end")
	}
	return total
}

func TestErrorSoundLength(t *testing.T) {
	s, err := ErrorSound(sampleRate)
	require.NoError(t, err)
	assert.Equal(t, sampleRate.N(errorDuration), countSamples(t, s))
}

func TestOKSoundPlaysTwoNotes(t *testing.T) {
	s, err := OKSound(sampleRate)
	require.NoError(t, err)
	assert.Equal(t, 2*sampleRate.N(okNoteLength), countSamples(t, s))
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p := NewPlayer(false)
	require.NoError(t, p.Initialize())
	p.PlayError()
	p.PlayOK()
	p.Close()
	assert.False(t, p.initialized)
}
