package repositories

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"wastetrack/database"
	"wastetrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestGenerateLotNoFormat(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInwardRepository(db)

	lotNo, err := repo.GenerateLotNo()
	require.NoError(t, err)

	want := "LOT" + time.Now().Format("060102") + "0001"
	assert.Equal(t, want, lotNo)
}

func TestGenerateLotNoIncrementsWithinDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInwardRepository(db)

	first, err := repo.GenerateLotNo()
	require.NoError(t, err)

	entry := models.InwardEntry{
		LotNo:      first,
		ManifestNo: "MF-1",
		CompanyID:  1,
		WasteName:  "Spent Solvent",
		Quantity:   10,
		Unit:       "KG",
		EntryDate:  "2026-08-01",
	}
	require.NoError(t, db.Create(&entry).Error)

	second, err := repo.GenerateLotNo()
	require.NoError(t, err)
	assert.Equal(t, first[:len(first)-4]+"0002", second)
	assert.NotEqual(t, first, second)
}

func TestGenerateLotNoIgnoresOtherDays(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInwardRepository(db)

	stale := models.InwardEntry{
		LotNo:      "LOT2001010042",
		ManifestNo: "MF-OLD",
		CompanyID:  1,
		WasteName:  "ETP Sludge",
		Quantity:   5,
		Unit:       "KG",
		EntryDate:  "2020-01-01",
	}
	require.NoError(t, db.Create(&stale).Error)

	lotNo, err := repo.GenerateLotNo()
	require.NoError(t, err)
	assert.Equal(t, "LOT"+time.Now().Format("060102")+"0001", lotNo)
}

func TestOutwardAndInvoicePrefixes(t *testing.T) {
	db := setupTestDB(t)

	outNo, err := NewOutwardRepository(db).GenerateLotNo()
	require.NoError(t, err)
	assert.Equal(t, "OUT", outNo[:3])
	assert.Len(t, outNo, 13)

	invNo, err := NewInvoiceRepository(db).GenerateInvoiceNo()
	require.NoError(t, err)
	assert.Equal(t, "INV", invNo[:3])
	assert.Len(t, invNo, 13)
}

func TestGetUninvoicedFiltersLinkedEntries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInwardRepository(db)

	linkedID := int64(777)
	free := models.InwardEntry{
		LotNo: "LOT2608290001", ManifestNo: "MF-1", CompanyID: 1,
		WasteName: "Spent Solvent", Quantity: 10, Unit: "KG", EntryDate: "2026-08-29",
	}
	linked := models.InwardEntry{
		LotNo: "LOT2608290002", ManifestNo: "MF-2", CompanyID: 1,
		WasteName: "Spent Solvent", Quantity: 20, Unit: "KG", EntryDate: "2026-08-29",
		InvoiceID: &linkedID,
	}
	other := models.InwardEntry{
		LotNo: "LOT2608290003", ManifestNo: "MF-3", CompanyID: 2,
		WasteName: "ETP Sludge", Quantity: 30, Unit: "KG", EntryDate: "2026-08-29",
	}
	require.NoError(t, db.Create(&free).Error)
	require.NoError(t, db.Create(&linked).Error)
	require.NoError(t, db.Create(&other).Error)

	entries, err := repo.GetUninvoiced(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, free.LotNo, entries[0].LotNo)
}

func TestMaterialRateFallsBackToZero(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInwardRepository(db)

	require.NoError(t, db.Create(&models.CompanyMaterial{
		CompanyID: 1, MaterialName: "Spent Solvent", Unit: "KG", Rate: 12.5,
	}).Error)

	rate, err := repo.MaterialRate(1, "Spent Solvent")
	require.NoError(t, err)
	assert.Equal(t, 12.5, rate)

	rate, err = repo.MaterialRate(1, "Unknown Waste")
	require.NoError(t, err)
	assert.Zero(t, rate)
}
