package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodness_grid/internal/models"
)

func TestPendingPickupsFiltersAndEnriches(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	volunteer := seedUser(t, db, "vol1", models.RoleVolunteer)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	d1 := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationClaimed, base)
	d2 := seedDonation(t, db, donor.ID, "clothes", "Jackets", "4 pcs", models.DonationClaimed, base)
	d3 := seedDonation(t, db, donor.ID, "books", "Textbooks", "20 pcs", models.DonationClaimed, base)

	older := seedTransaction(t, db, d1.ID, ngo.ID, nil, models.TransactionPending, base)
	newer := seedTransaction(t, db, d2.ID, ngo.ID, nil, models.TransactionPending, base.Add(time.Hour))
	seedTransaction(t, db, d3.ID, ngo.ID, &volunteer.ID, models.TransactionInProgress, base.Add(2*time.Hour))

	rows, err := PendingPickups(db)
	require.NoError(t, err)
	require.Len(t, rows, 2, "assigned transactions stay out of the queue")
	assert.Equal(t, newer.ID, rows[0].TransactionID)
	assert.Equal(t, older.ID, rows[1].TransactionID)
	assert.Equal(t, "donor1", rows[0].DonorName)
	assert.Equal(t, "ngo1", rows[0].NgoName)
	assert.Equal(t, "Jackets", rows[0].Description)
}

func TestAssignVolunteerMovesToInProgress(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	volunteer := seedUser(t, db, "vol1", models.RoleVolunteer)
	donation := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationClaimed, time.Now())
	txn := seedTransaction(t, db, donation.ID, ngo.ID, nil, models.TransactionPending, time.Now())

	require.NoError(t, AssignVolunteer(db, txn.ID, volunteer.ID))

	var reloaded models.Transaction
	require.NoError(t, db.First(&reloaded, txn.ID).Error)
	assert.Equal(t, models.TransactionInProgress, reloaded.Status)
	require.NotNil(t, reloaded.VolunteerID)
	assert.Equal(t, volunteer.ID, *reloaded.VolunteerID)
}

func TestAssignVolunteerDoubleAssign(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	volA := seedUser(t, db, "volA", models.RoleVolunteer)
	volB := seedUser(t, db, "volB", models.RoleVolunteer)
	donation := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationClaimed, time.Now())
	txn := seedTransaction(t, db, donation.ID, ngo.ID, nil, models.TransactionPending, time.Now())

	require.NoError(t, AssignVolunteer(db, txn.ID, volA.ID))
	err := AssignVolunteer(db, txn.ID, volB.ID)
	assert.ErrorIs(t, err, ErrConflict)

	var reloaded models.Transaction
	require.NoError(t, db.First(&reloaded, txn.ID).Error)
	require.NotNil(t, reloaded.VolunteerID)
	assert.Equal(t, volA.ID, *reloaded.VolunteerID, "the first volunteer keeps the pickup")
	assert.Equal(t, models.TransactionInProgress, reloaded.Status)
}

func TestAssignVolunteerMissingTransaction(t *testing.T) {
	db := setupTestDB(t)
	volunteer := seedUser(t, db, "vol1", models.RoleVolunteer)

	err := AssignVolunteer(db, 777, volunteer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteTransactionPropagatesToDonation(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	volunteer := seedUser(t, db, "vol1", models.RoleVolunteer)
	donation := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationClaimed, time.Now())
	txn := seedTransaction(t, db, donation.ID, ngo.ID, &volunteer.ID, models.TransactionInProgress, time.Now())

	require.NoError(t, CompleteTransaction(db, txn.ID))

	var reloadedTxn models.Transaction
	require.NoError(t, db.First(&reloadedTxn, txn.ID).Error)
	assert.Equal(t, models.TransactionCompleted, reloadedTxn.Status)
	assert.NotNil(t, reloadedTxn.CompletedAt)

	var reloadedDonation models.Donation
	require.NoError(t, db.First(&reloadedDonation, donation.ID).Error)
	assert.Equal(t, models.DonationCompleted, reloadedDonation.Status)
}

func TestCompleteTransactionIdempotent(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	volunteer := seedUser(t, db, "vol1", models.RoleVolunteer)
	donation := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationClaimed, time.Now())
	txn := seedTransaction(t, db, donation.ID, ngo.ID, &volunteer.ID, models.TransactionInProgress, time.Now())

	require.NoError(t, CompleteTransaction(db, txn.ID))

	var first models.Transaction
	require.NoError(t, db.First(&first, txn.ID).Error)

	require.NoError(t, CompleteTransaction(db, txn.ID), "re-completing is a no-op success")

	var second models.Transaction
	require.NoError(t, db.First(&second, txn.ID).Error)
	assert.Equal(t, first.CompletedAt, second.CompletedAt, "completed_at must not move on re-complete")
}

func TestCompleteTransactionRejectsPending(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	donation := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationClaimed, time.Now())
	txn := seedTransaction(t, db, donation.ID, ngo.ID, nil, models.TransactionPending, time.Now())

	err := CompleteTransaction(db, txn.ID)
	assert.ErrorIs(t, err, ErrConflict)

	var reloadedDonation models.Donation
	require.NoError(t, db.First(&reloadedDonation, donation.ID).Error)
	assert.Equal(t, models.DonationClaimed, reloadedDonation.Status, "rejected completion must not touch the donation")
}

func TestCompleteTransactionMissing(t *testing.T) {
	db := setupTestDB(t)

	err := CompleteTransaction(db, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteTransactionRollsBackWhenDonationNotClaimed(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	volunteer := seedUser(t, db, "vol1", models.RoleVolunteer)
	// donation incorrectly still available: the propagation guard must
	// fail and roll the transaction update back with it
	donation := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationAvailable, time.Now())
	txn := seedTransaction(t, db, donation.ID, ngo.ID, &volunteer.ID, models.TransactionInProgress, time.Now())

	err := CompleteTransaction(db, txn.ID)
	assert.ErrorIs(t, err, ErrConflict)

	var reloadedTxn models.Transaction
	require.NoError(t, db.First(&reloadedTxn, txn.ID).Error)
	assert.Equal(t, models.TransactionInProgress, reloadedTxn.Status, "both updates commit or neither does")
	assert.Nil(t, reloadedTxn.CompletedAt)
}

func TestVolunteerAssignmentsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	volunteer := seedUser(t, db, "vol1", models.RoleVolunteer)
	other := seedUser(t, db, "vol2", models.RoleVolunteer)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	d1 := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationClaimed, base)
	d2 := seedDonation(t, db, donor.ID, "clothes", "Jackets", "4 pcs", models.DonationCompleted, base)
	d3 := seedDonation(t, db, donor.ID, "books", "Textbooks", "20 pcs", models.DonationClaimed, base)

	older := seedTransaction(t, db, d1.ID, ngo.ID, &volunteer.ID, models.TransactionInProgress, base)
	newer := seedTransaction(t, db, d2.ID, ngo.ID, &volunteer.ID, models.TransactionCompleted, base.Add(time.Hour))
	seedTransaction(t, db, d3.ID, ngo.ID, &other.ID, models.TransactionInProgress, base.Add(2*time.Hour))

	rows, err := VolunteerAssignments(db, volunteer.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].TransactionID)
	assert.Equal(t, older.ID, rows[1].TransactionID)
	assert.Equal(t, "donor1 street", rows[0].DonorAddress)
	assert.Equal(t, "ngo1 street", rows[0].NgoAddress)
}

func TestClaimedByNgo(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngoA := seedUser(t, db, "ngoA", models.RoleNgo)
	ngoB := seedUser(t, db, "ngoB", models.RoleNgo)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	d1 := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationClaimed, base)
	d2 := seedDonation(t, db, donor.ID, "clothes", "Jackets", "4 pcs", models.DonationClaimed, base)
	seedTransaction(t, db, d1.ID, ngoA.ID, nil, models.TransactionPending, base)
	seedTransaction(t, db, d2.ID, ngoB.ID, nil, models.TransactionPending, base.Add(time.Hour))

	rows, err := ClaimedByNgo(db, ngoA.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, d1.ID, rows[0].DonationID)
	assert.Equal(t, models.TransactionPending, rows[0].TransactionStatus)
	assert.Equal(t, "donor1", rows[0].DonorName)
}

func TestAllTransactionsIncludesNullableVolunteer(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	volunteer := seedUser(t, db, "vol1", models.RoleVolunteer)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	d1 := seedDonation(t, db, donor.ID, "food", "Rice bags", "10 kg", models.DonationClaimed, base)
	d2 := seedDonation(t, db, donor.ID, "clothes", "Jackets", "4 pcs", models.DonationClaimed, base)
	seedTransaction(t, db, d1.ID, ngo.ID, nil, models.TransactionPending, base)
	assigned := seedTransaction(t, db, d2.ID, ngo.ID, &volunteer.ID, models.TransactionInProgress, base.Add(time.Hour))

	rows, err := AllTransactions(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, assigned.ID, rows[0].TransactionID)
	require.NotNil(t, rows[0].VolunteerName)
	assert.Equal(t, "vol1", *rows[0].VolunteerName)
	assert.Nil(t, rows[1].VolunteerName)
}

func TestClaimThenAssignThenCompleteFlow(t *testing.T) {
	db := setupTestDB(t)
	donor := seedUser(t, db, "donor1", models.RoleDonor)
	ngo := seedUser(t, db, "ngo1", models.RoleNgo)
	volunteer := seedUser(t, db, "vol1", models.RoleVolunteer)

	donationID, err := CreateDonation(db, donor.ID, DonationInput{
		Type:          "food",
		Description:   "Fresh vegetables",
		Quantity:      "15 kg",
		PickupAddress: "3 Market Rd",
	})
	require.NoError(t, err)

	require.NoError(t, ClaimDonation(db, donationID, ngo.ID))

	pickups, err := PendingPickups(db)
	require.NoError(t, err)
	require.Len(t, pickups, 1)

	require.NoError(t, AssignVolunteer(db, pickups[0].TransactionID, volunteer.ID))
	require.NoError(t, CompleteTransaction(db, pickups[0].TransactionID))

	var donation models.Donation
	require.NoError(t, db.First(&donation, donationID).Error)
	assert.Equal(t, models.DonationCompleted, donation.Status)

	empty, err := PendingPickups(db)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
