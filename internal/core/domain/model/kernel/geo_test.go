package kernel_test

import (
	"fmt"
	"testing"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create point with valid coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(6.5244, 3.3792)

		require.NoError(t, err)
		assert.InDelta(t, 6.5244, point.Lat(), 1e-9)
		assert.InDelta(t, 3.3792, point.Lng(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		boundaries := []struct {
			lat float64
			lng float64
		}{
			{90, 180},
			{-90, -180},
			{0, 0},
		}

		for _, b := range boundaries {
			t.Run(fmt.Sprintf("lat=%v lng=%v", b.lat, b.lng), func(t *testing.T) {
				_, err := kernel.NewGeoPoint(b.lat, b.lng)
				require.NoError(t, err)
			})
		}
	})

	t.Run("should reject out-of-range latitude", func(t *testing.T) {
		for _, lat := range []float64{90.0001, -90.0001, 200} {
			_, err := kernel.NewGeoPoint(lat, 0)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Contains(t, err.Error(), "lat")
		}
	})

	t.Run("should reject out-of-range longitude", func(t *testing.T) {
		for _, lng := range []float64{180.0001, -180.0001, 360} {
			_, err := kernel.NewGeoPoint(0, lng)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Contains(t, err.Error(), "lng")
		}
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("should fail for zero value", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should pass for constructed point", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(9.0765, 7.3986)
		require.NoError(t, err)

		require.NoError(t, point.Validate())
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("should return zero for identical points", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(6.5244, 3.3792)
		require.NoError(t, err)

		km, err := point.DistanceKm(point)

		require.NoError(t, err)
		assert.Zero(t, km)
	})

	t.Run("should be symmetric", func(t *testing.T) {
		pairs := []struct {
			aLat, aLng float64
			bLat, bLng float64
		}{
			{6.5244, 3.3792, 7.3775, 3.9470},
			{9.0765, 7.3986, 6.4550, 3.3841},
			{-33.8688, 151.2093, 51.5074, -0.1278},
			{0, 0, 0, 180},
		}

		for _, p := range pairs {
			a, err := kernel.NewGeoPoint(p.aLat, p.aLng)
			require.NoError(t, err)
			b, err := kernel.NewGeoPoint(p.bLat, p.bLng)
			require.NoError(t, err)

			ab, err := a.DistanceKm(b)
			require.NoError(t, err)
			ba, err := b.DistanceKm(a)
			require.NoError(t, err)

			assert.InDelta(t, ab, ba, 1e-9)
		}
	})

	t.Run("should compute known distances", func(t *testing.T) {
		// Lagos Island to Ikeja, roughly 16.6 km great-circle.
		lagosIsland, err := kernel.NewGeoPoint(6.4550, 3.3841)
		require.NoError(t, err)
		ikeja, err := kernel.NewGeoPoint(6.6018, 3.3515)
		require.NoError(t, err)

		km, err := lagosIsland.DistanceKm(ikeja)

		require.NoError(t, err)
		assert.InDelta(t, 16.7, km, 0.5)
	})

	t.Run("should round to two decimal places", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(6.5244, 3.3792)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(6.6018, 3.3515)
		require.NoError(t, err)

		km, err := a.DistanceKm(b)

		require.NoError(t, err)
		assert.InDelta(t, km, float64(int64(km*100))/100, 1e-9)
	})

	t.Run("should fail for unconstructed point", func(t *testing.T) {
		var zero kernel.GeoPoint
		point, err := kernel.NewGeoPoint(6.5244, 3.3792)
		require.NoError(t, err)

		_, err = point.DistanceKm(zero)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("should report equal coordinates", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(6.5244, 3.3792)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(6.5244, 3.3792)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("should report different coordinates", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(6.5244, 3.3792)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(9.0765, 7.3986)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.False(t, equal)
	})
}
