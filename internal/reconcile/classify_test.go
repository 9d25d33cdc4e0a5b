package reconcile

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prudhvinik1/boxfleet/internal/apperr"
	"github.com/prudhvinik1/boxfleet/internal/models"
)

func str(s string) *string { return &s }

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func TestClassify_DeletedWinsOverOtherFlags(t *testing.T) {
	for _, flags := range []struct{ edited, new bool }{
		{false, false}, {true, false}, {false, true}, {true, true},
	} {
		d := models.SensorDescriptor{
			ID:      str("s2"),
			Deleted: true,
			Edited:  models.Flag(flags.edited),
			New:     models.Flag(flags.new),
			Title:   str("ignored"),
		}

		c, err := Classify(0, d, sequentialIDs())

		require.NoError(t, err, "edited=%v new=%v", flags.edited, flags.new)
		assert.Equal(t, models.SensorDelete, c.Op)
		assert.Equal(t, "s2", c.SensorID)
	}
}

func TestClassify_DeleteNeedsID(t *testing.T) {
	_, err := Classify(4, models.SensorDescriptor{Deleted: true}, sequentialIDs())

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "sensors[4]", apperr.Subject(err))
}

func TestClassify_Create(t *testing.T) {
	d := models.SensorDescriptor{
		Title:      str("X"),
		Unit:       str("C"),
		SensorType: str("TempSensor"),
		Icon:       str("osem-thermometer"),
		Edited:     true,
		New:        true,
	}

	c, err := Classify(0, d, sequentialIDs())

	require.NoError(t, err)
	assert.Equal(t, models.SensorCreate, c.Op)
	assert.Equal(t, "gen-1", c.SensorID)
	require.NotNil(t, c.New)
	assert.Equal(t, models.NewSensor{
		ID:         "gen-1",
		Title:      "X",
		Unit:       "C",
		SensorType: "TempSensor",
		Icon:       str("osem-thermometer"),
	}, *c.New)
}

func TestClassify_CreateKeepsClientID(t *testing.T) {
	d := models.SensorDescriptor{
		ID: str("client-7"), Title: str("X"), Unit: str("C"), SensorType: str("T"),
		Edited: true, New: true,
	}

	c, err := Classify(0, d, sequentialIDs())

	require.NoError(t, err)
	assert.Equal(t, "client-7", c.SensorID)
	assert.Equal(t, "client-7", c.New.ID)
}

func TestClassify_CreateRequiresMandatoryFields(t *testing.T) {
	tests := []struct {
		name    string
		d       models.SensorDescriptor
		missing string
	}{
		{"no title", models.SensorDescriptor{Unit: str("C"), SensorType: str("T")}, "title"},
		{"blank unit", models.SensorDescriptor{Title: str("X"), Unit: str(" "), SensorType: str("T")}, "unit"},
		{"no type", models.SensorDescriptor{Title: str("X"), Unit: str("C")}, "sensorType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.d.Edited, tt.d.New = true, true

			_, err := Classify(1, tt.d, sequentialIDs())

			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Contains(t, err.Error(), tt.missing)
			assert.Equal(t, "sensors[1]", apperr.Subject(err))
		})
	}
}

func TestClassify_UpdateIsSparse(t *testing.T) {
	d := models.SensorDescriptor{ID: str("s1"), Title: str("Temp"), Edited: true}

	c, err := Classify(0, d, sequentialIDs())

	require.NoError(t, err)
	assert.Equal(t, models.SensorUpdate, c.Op)
	assert.Equal(t, "s1", c.SensorID)
	assert.Equal(t, str("Temp"), c.Patch.Title)
	assert.Nil(t, c.Patch.Unit)
	assert.Nil(t, c.Patch.SensorType)
	assert.Nil(t, c.Patch.Status)
	assert.Nil(t, c.Patch.Icon)
	assert.Nil(t, c.New)
}

func TestClassify_UpdateNeedsID(t *testing.T) {
	_, err := Classify(2, models.SensorDescriptor{Edited: true, Title: str("x")}, sequentialIDs())

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "sensors[2]", apperr.Subject(err))
}

func TestClassify_Rejects(t *testing.T) {
	tests := []struct {
		name string
		d    models.SensorDescriptor
	}{
		{"no flags", models.SensorDescriptor{ID: str("s1"), Title: str("x")}},
		{"new without edited", models.SensorDescriptor{Title: str("X"), Unit: str("C"), SensorType: str("T"), New: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(0, tt.d, sequentialIDs())
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestClassifyAll_StopsAtFirstRejected(t *testing.T) {
	batch := []models.SensorDescriptor{
		{ID: str("s1"), Edited: true, Title: str("A")},
		{ID: str("s3")},
		{ID: str("s2"), Deleted: true},
	}

	changes, err := ClassifyAll(batch, sequentialIDs())

	assert.Nil(t, changes)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "sensor s3", apperr.Subject(err))
}

func TestClassifyAll_KeepsOrder(t *testing.T) {
	batch := []models.SensorDescriptor{
		{ID: str("s2"), Deleted: true},
		{Title: str("X"), Unit: str("C"), SensorType: str("T"), Edited: true, New: true},
		{ID: str("s1"), Edited: true, Unit: str("K")},
	}

	changes, err := ClassifyAll(batch, sequentialIDs())

	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, models.SensorDelete, changes[0].Op)
	assert.Equal(t, models.SensorCreate, changes[1].Op)
	assert.Equal(t, models.SensorUpdate, changes[2].Op)

	created, updated, deleted := Count(changes)
	assert.Equal(t, [3]int{1, 1, 1}, [3]int{created, updated, deleted})
}

func TestClassifyAll_Empty(t *testing.T) {
	changes, err := ClassifyAll(nil, sequentialIDs())

	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestClassifyAll_WireFlags(t *testing.T) {
	// ARRANGE
	body := `[
		{"_id": "s1", "deleted": "true"},
		{"_id": "s2", "edited": 1, "title": "PM2.5"},
		{"title": "Temp", "unit": "°C", "sensorType": "HDC1080", "edited": "1", "new": true}
	]`
	var descriptors []models.SensorDescriptor
	require.NoError(t, json.Unmarshal([]byte(body), &descriptors))

	// ACT
	changes, err := ClassifyAll(descriptors, sequentialIDs())

	// ASSERT
	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, models.SensorDelete, changes[0].Op)
	assert.Equal(t, models.SensorUpdate, changes[1].Op)
	assert.Equal(t, "PM2.5", *changes[1].Patch.Title)
	assert.Equal(t, models.SensorCreate, changes[2].Op)
	assert.Equal(t, "gen-1", changes[2].SensorID)
}
