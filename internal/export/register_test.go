package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmiher/complaint-portal/internal/models"
)

func sampleRegister() []models.Complaint {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	responded := now.Add(2 * time.Hour)
	response := "replacement installed"
	return []models.Complaint{
		{
			ID:              "CMF5K2A9XYZ",
			StudentID:       "BCA2023001",
			StudentName:     "Aarav Sharma",
			Department:      "BCA",
			ComplaintType:   "Infrastructure",
			Subject:         "Broken projector",
			Status:          models.StatusResolved,
			FacultyResponse: &response,
			CreatedAt:       now,
			RespondedAt:     &responded,
		},
		{
			ID:            "CMF5K2B1QRS",
			StudentID:     "MCA2023001",
			StudentName:   "Priya Deshmukh",
			Department:    "MCA",
			ComplaintType: "Academic",
			Subject:       "Missing grades",
			Status:        models.StatusPending,
			CreatedAt:     now.Add(time.Hour),
		},
	}
}

func TestRegisterCSV(t *testing.T) {
	data, err := RegisterCSV(sampleRegister())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, registerHeaders, records[0])
	assert.Equal(t, "CMF5K2A9XYZ", records[1][0])
	assert.Equal(t, "2026-08-20T12:00:00Z", records[1][8])
	assert.Empty(t, records[2][8], "pending complaints have no responded timestamp")
}

func TestRegisterCSVEmpty(t *testing.T) {
	data, err := RegisterCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "headers only")
}

func TestRegisterPDF(t *testing.T) {
	data, err := RegisterPDF(sampleRegister(), "Complaint Register")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.NotEmpty(t, data)
}
