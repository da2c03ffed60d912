package worktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSession(t *testing.T) {
	t.Run("same day session stays whole", func(t *testing.T) {
		parts, spans, anomaly := splitSession(9*60, 18*60)
		require.False(t, anomaly)
		assert.False(t, spans)
		require.Len(t, parts, 1)
		assert.Equal(t, 9*60, parts[0].StartMin)
		assert.Equal(t, 18*60, parts[0].EndMin)
		assert.True(t, parts[0].HasCheckout)
	})

	t.Run("morning checkout below checkin splits at midnight", func(t *testing.T) {
		parts, spans, anomaly := splitSession(20*60, 6*60)
		require.False(t, anomaly)
		assert.True(t, spans)
		require.Len(t, parts, 2)
		assert.Equal(t, 20*60, parts[0].StartMin)
		assert.Equal(t, endOfDayMinute, parts[0].EndMin)
		assert.False(t, parts[0].HasCheckout)
		assert.Equal(t, 0, parts[1].StartMin)
		assert.Equal(t, 6*60, parts[1].EndMin)
		assert.True(t, parts[1].HasCheckout)
	})

	t.Run("checkout equal to checkin is a zero-length session", func(t *testing.T) {
		parts, spans, anomaly := splitSession(9*60, 9*60)
		require.False(t, anomaly)
		assert.False(t, spans)
		require.Len(t, parts, 1)
		assert.Equal(t, parts[0].StartMin, parts[0].EndMin)
		assert.True(t, parts[0].HasCheckout)
	})

	t.Run("afternoon checkout below checkin is an anomaly, not overnight", func(t *testing.T) {
		// 18:00 in, 14:00 out: no midnight-span justification.
		parts, spans, anomaly := splitSession(18*60, 14*60)
		assert.True(t, anomaly)
		assert.False(t, spans)
		assert.Nil(t, parts)
	})

	t.Run("checkout just before noon still counts as overnight", func(t *testing.T) {
		_, spans, anomaly := splitSession(22*60, 11*60+59)
		assert.False(t, anomaly)
		assert.True(t, spans)
	})
}
