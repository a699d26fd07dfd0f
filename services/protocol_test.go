package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

func TestGenerateProtocolFreshYear(t *testing.T) {
	db := setupTestDB("protocol_fresh")
	year := time.Now().Year()

	protocol, err := GenerateProtocol(db, &models.DriverRequest{}, models.DriverProtocolPrefix, year)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("DRV-%d0001", year), protocol)
}

func TestGenerateProtocolIncrements(t *testing.T) {
	db := setupTestDB("protocol_incr")
	year := time.Now().Year()

	db.Create(&models.DriverRequest{
		Protocol: fmt.Sprintf("DRV-%d0041", year),
		Name:     "X", CPF: "52998224725",
		Email: "x@example.com", Phone: "1", LicenseNumber: "1", LicenseCategory: "B",
		Status: models.RequestStatusApproved,
	})

	protocol, err := GenerateProtocol(db, &models.DriverRequest{}, models.DriverProtocolPrefix, year)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("DRV-%d0042", year), protocol)
}

func TestGenerateProtocolPartitionsByYear(t *testing.T) {
	db := setupTestDB("protocol_year")
	year := time.Now().Year()

	// Last year's counter must not leak into the current year
	db.Create(&models.DriverRequest{
		Protocol: fmt.Sprintf("DRV-%d9000", year-1),
		Name:     "X", CPF: "52998224725",
		Email: "x@example.com", Phone: "1", LicenseNumber: "1", LicenseCategory: "B",
		Status: models.RequestStatusApproved,
	})

	protocol, err := GenerateProtocol(db, &models.DriverRequest{}, models.DriverProtocolPrefix, year)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("DRV-%d0001", year), protocol)
}

func TestGenerateProtocolPartitionsByPrefix(t *testing.T) {
	db := setupTestDB("protocol_prefix")
	year := time.Now().Year()

	db.Create(&models.VehicleRequest{
		Protocol: fmt.Sprintf("VHC-%d0007", year),
		Plate:    "ABC1234", Brand: "VW", Model: "Kombi", Year: 2018,
		Color: "Branca", FuelType: "flex",
		Status: models.RequestStatusApproved,
	})

	// Driver numbering is independent of vehicle numbering
	protocol, err := GenerateProtocol(db, &models.DriverRequest{}, models.DriverProtocolPrefix, year)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("DRV-%d0001", year), protocol)

	protocol, err = GenerateProtocol(db, &models.VehicleRequest{}, models.VehicleProtocolPrefix, year)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("VHC-%d0008", year), protocol)
}

func TestGenerateProtocolExhausted(t *testing.T) {
	db := setupTestDB("protocol_overflow")
	year := time.Now().Year()

	db.Create(&models.DriverRequest{
		Protocol: fmt.Sprintf("DRV-%d9999", year),
		Name:     "X", CPF: "52998224725",
		Email: "x@example.com", Phone: "1", LicenseNumber: "1", LicenseCategory: "B",
		Status: models.RequestStatusApproved,
	})

	_, err := GenerateProtocol(db, &models.DriverRequest{}, models.DriverProtocolPrefix, year)
	assert.ErrorIs(t, err, utils.ErrProtocolExhausted)
}

// Failed submissions must not consume protocol numbers: the first
// successful submission after a rejected-by-validation attempt still
// gets 0001.
func TestFailedSubmissionDoesNotConsumeProtocol(t *testing.T) {
	db := setupTestDB("protocol_no_consume")
	svc := NewDriverRequestService(db)
	year := time.Now().Year()

	bad := validDriverSubmission()
	bad.CPF = "11111111111"
	_, err := svc.Submit(bad)
	assert.Error(t, err)

	req, err := svc.Submit(validDriverSubmission())
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("DRV-%d0001", year), req.Protocol)
}
