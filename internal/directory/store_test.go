package directory_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zirz1911/global-security-hub/internal/database/models"
	"github.com/zirz1911/global-security-hub/internal/directory"
	"github.com/zirz1911/global-security-hub/internal/testutil"
)

func TestStore_CreateOrganization_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	store := directory.NewStore(db)
	ctx := testutil.TestContext(t)

	testutil.CreateTestOrg(t, db, "Interpol")

	err := store.CreateOrganization(ctx, &models.Organization{
		Name:    "Interpol",
		Country: "France",
		Type:    models.OrgTypeOther,
	})
	assert.ErrorIs(t, err, directory.ErrDuplicateName)
}

func TestStore_UpdateOrganization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	store := directory.NewStore(db)
	ctx := testutil.TestContext(t)

	org := testutil.CreateTestOrg(t, db, "Old Name")
	other := testutil.CreateTestOrg(t, db, "Taken Name")

	t.Run("renames freely to an unused name", func(t *testing.T) {
		got, err := store.UpdateOrganization(ctx, org.ID, &models.Organization{
			Name:    "New Name",
			Country: "Testland",
			Type:    models.OrgTypePolice,
		})
		require.NoError(t, err)
		assert.Equal(t, "New Name", got.Name)
	})

	t.Run("rejects a name held by another organization", func(t *testing.T) {
		_, err := store.UpdateOrganization(ctx, org.ID, &models.Organization{
			Name:    other.Name,
			Country: "Testland",
			Type:    models.OrgTypePolice,
		})
		assert.ErrorIs(t, err, directory.ErrDuplicateName)
	})

	t.Run("keeping its own name is not a collision", func(t *testing.T) {
		_, err := store.UpdateOrganization(ctx, org.ID, &models.Organization{
			Name:    "New Name",
			Country: "Elsewhere",
			Type:    models.OrgTypePolice,
		})
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.UpdateOrganization(ctx, uuid.New(), &models.Organization{Name: "X"})
		assert.ErrorIs(t, err, directory.ErrOrganizationNotFound)
	})
}

func TestStore_DeleteOrganization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	store := directory.NewStore(db)
	ctx := testutil.TestContext(t)

	t.Run("blocked while personnel attached", func(t *testing.T) {
		org := testutil.CreateTestOrg(t, db, "Staffed Org")
		testutil.CreateTestPersonnel(t, db, org.ID, "Officer One")
		testutil.CreateTestPersonnel(t, db, org.ID, "Officer Two")

		err := store.DeleteOrganization(ctx, org.ID)

		var attached *directory.PersonnelAttachedError
		require.ErrorAs(t, err, &attached)
		assert.Equal(t, int64(2), attached.Count)

		// The organization must still be there
		_, err = store.GetOrganization(ctx, org.ID)
		assert.NoError(t, err)
	})

	t.Run("succeeds once personnel removed", func(t *testing.T) {
		org := testutil.CreateTestOrg(t, db, "Empty Org")

		require.NoError(t, store.DeleteOrganization(ctx, org.ID))

		_, err := store.GetOrganization(ctx, org.ID)
		assert.ErrorIs(t, err, directory.ErrOrganizationNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := store.DeleteOrganization(ctx, uuid.New())
		assert.ErrorIs(t, err, directory.ErrOrganizationNotFound)
	})
}

func TestStore_PersonnelOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	store := directory.NewStore(db)
	ctx := testutil.TestContext(t)

	orgA := testutil.CreateTestOrg(t, db, "Org A")
	orgB := testutil.CreateTestOrg(t, db, "Org B")
	person := testutil.CreateTestPersonnel(t, db, orgA.ID, "Agent")

	t.Run("update under the wrong organization", func(t *testing.T) {
		_, err := store.UpdatePersonnel(ctx, orgB.ID, person.ID, &models.Personnel{
			Name:     "Agent",
			Position: "Director",
		})
		assert.ErrorIs(t, err, directory.ErrWrongOrganization)
	})

	t.Run("delete under the wrong organization", func(t *testing.T) {
		err := store.DeletePersonnel(ctx, orgB.ID, person.ID)
		assert.ErrorIs(t, err, directory.ErrWrongOrganization)
	})

	t.Run("missing record is not an ownership error", func(t *testing.T) {
		err := store.DeletePersonnel(ctx, orgA.ID, uuid.New())
		assert.ErrorIs(t, err, directory.ErrPersonnelNotFound)
	})

	t.Run("update under the right organization", func(t *testing.T) {
		got, err := store.UpdatePersonnel(ctx, orgA.ID, person.ID, &models.Personnel{
			Name:     "Agent",
			Position: "Director",
		})
		require.NoError(t, err)
		assert.Equal(t, "Director", got.Position)
	})
}

func TestStore_CreatePersonnel_OrgMustExist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	store := directory.NewStore(db)
	ctx := testutil.TestContext(t)

	err := store.CreatePersonnel(ctx, uuid.New(), &models.Personnel{
		Name:     "Nobody",
		Position: "Nothing",
	})
	assert.ErrorIs(t, err, directory.ErrOrganizationNotFound)
}

func TestStore_ListSummaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	store := directory.NewStore(db)
	ctx := testutil.TestContext(t)

	testutil.CreateTestOrg(t, db, "Zulu Agency")
	testutil.CreateTestOrg(t, db, "Alpha Agency")
	inactive := testutil.CreateTestOrg(t, db, "Mothballed Agency")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	t.Run("active only, sorted by name", func(t *testing.T) {
		got, err := store.ListSummaries(ctx, true)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Alpha Agency", got[0].Name)
		assert.Equal(t, "Zulu Agency", got[1].Name)
	})

	t.Run("including inactive", func(t *testing.T) {
		got, err := store.ListSummaries(ctx, false)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestStore_Stats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	store := directory.NewStore(db)
	ctx := testutil.TestContext(t)

	orgA := testutil.CreateTestOrg(t, db, "Org A")
	testutil.CreateTestOrg(t, db, "Org B")
	testutil.CreateTestPersonnel(t, db, orgA.ID, "Agent")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalOrganizations)
	assert.Equal(t, int64(1), stats.TotalPersonnel)
	assert.Equal(t, int64(1), stats.Countries)
	assert.Equal(t, int64(1), stats.Categories)
}

func TestStore_ListWithPersonnelCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	store := directory.NewStore(db)
	ctx := testutil.TestContext(t)

	orgA := testutil.CreateTestOrg(t, db, "Org A")
	testutil.CreateTestOrg(t, db, "Org B")
	testutil.CreateTestPersonnel(t, db, orgA.ID, "One")
	testutil.CreateTestPersonnel(t, db, orgA.ID, "Two")

	got, err := store.ListWithPersonnelCounts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Org A", got[0].Name)
	assert.Equal(t, int64(2), got[0].PersonnelCount)
	assert.Equal(t, int64(0), got[1].PersonnelCount)
}
