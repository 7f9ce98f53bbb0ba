package services

import (
	"testing"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/triage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeComplaintStore struct {
	complaints []*models.Complaint

	lastCategoriesQuery []string
	queried             bool
}

func (f *fakeComplaintStore) Create(c *models.Complaint) (*models.Complaint, error) {
	c.ID = primitive.NewObjectID()
	f.complaints = append(f.complaints, c)
	return c, nil
}

func (f *fakeComplaintStore) FindByID(id string) (*models.Complaint, error) {
	for _, c := range f.complaints {
		if c.ID.Hex() == id {
			return c, nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeComplaintStore) FindAll() ([]*models.Complaint, error) {
	f.queried = true
	return f.complaints, nil
}

func (f *fakeComplaintStore) FindByCreator(userID string) ([]*models.Complaint, error) {
	f.queried = true
	var out []*models.Complaint
	for _, c := range f.complaints {
		if c.CreatedBy.Hex() == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComplaintStore) FindByCategories(categories []string) ([]*models.Complaint, error) {
	f.queried = true
	f.lastCategoriesQuery = categories
	set := make(map[string]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	var out []*models.Complaint
	for _, c := range f.complaints {
		if set[c.Category] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComplaintStore) Update(id string, c *models.Complaint) (*models.Complaint, error) {
	return c, nil
}

type fakePointsStore struct {
	awarded map[string]int
}

func (f *fakePointsStore) AddPoints(id string, points int) error {
	if f.awarded == nil {
		f.awarded = map[string]int{}
	}
	f.awarded[id] += points
	return nil
}

type fakeNotifier struct {
	calls []string
}

func (f *fakeNotifier) NotifyStatusChange(complaintID, userID, category, status, resolution string) {
	f.calls = append(f.calls, status)
}

func newTestComplaintService() (*ComplaintService, *fakeComplaintStore, *fakePointsStore, *fakeNotifier) {
	store := &fakeComplaintStore{}
	points := &fakePointsStore{}
	notifier := &fakeNotifier{}
	svc := NewComplaintService(store, points, triage.NewClassifier(triage.DefaultTable()), notifier)
	return svc, store, points, notifier
}

func seedComplaint(store *fakeComplaintStore, category string, creator primitive.ObjectID) *models.Complaint {
	c := &models.Complaint{
		Title:       "seed",
		Description: "seed complaint",
		Category:    category,
		Severity:    models.SeverityLow,
		Status:      models.StatusPending,
		CreatedBy:   creator,
	}
	created, _ := store.Create(c)
	return created
}

func TestCreateAwardsPointsAndClassifies(t *testing.T) {
	svc, store, points, _ := newTestComplaintService()
	citizen := primitive.NewObjectID()

	created, err := svc.Create(models.Actor{ID: citizen.Hex(), Role: "citizen"}, &CreateComplaintRequest{
		Title:       "Overflowing dustbin",
		Description: "The garbage bin near the market is overflowing badly",
	})
	require.NoError(t, err)

	assert.Equal(t, triage.CategoryDustbins, created.Category)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, citizen, created.CreatedBy)
	assert.Equal(t, pointsPerComplaint, points.awarded[citizen.Hex()])
	assert.Len(t, store.complaints, 1)
}

func TestCreateKeepsClientCategory(t *testing.T) {
	svc, _, _, _ := newTestComplaintService()
	citizen := primitive.NewObjectID()

	created, err := svc.Create(models.Actor{ID: citizen.Hex(), Role: "citizen"}, &CreateComplaintRequest{
		Title:       "Overflowing dustbin",
		Description: "The garbage bin near the market is overflowing badly",
		Category:    triage.CategoryPothole,
		Severity:    models.SeverityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, triage.CategoryPothole, created.Category)
	assert.Equal(t, models.SeverityHigh, created.Severity)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc, store, points, _ := newTestComplaintService()
	citizen := primitive.NewObjectID()

	created, err := svc.Create(models.Actor{ID: citizen.Hex(), Role: "citizen"}, &CreateComplaintRequest{
		Title:       "Overflowing dustbin",
		Description: "The garbage bin near the market is overflowing badly",
		Category:    "Totally Made Up",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid complaint category")
	assert.Nil(t, created)
	assert.Empty(t, store.complaints)
	assert.Empty(t, points.awarded)
}

func TestListForActorCitizenSeesOwnOnly(t *testing.T) {
	svc, store, _, _ := newTestComplaintService()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	seedComplaint(store, triage.CategoryPothole, alice)
	seedComplaint(store, triage.CategoryWaterLeak, bob)

	got, err := svc.ListForActor(models.Actor{ID: alice.Hex(), Role: "citizen"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alice, got[0].CreatedBy)
}

func TestListForActorAdminSeesAll(t *testing.T) {
	svc, store, _, _ := newTestComplaintService()
	seedComplaint(store, triage.CategoryPothole, primitive.NewObjectID())
	seedComplaint(store, triage.CategoryWaterLeak, primitive.NewObjectID())

	got, err := svc.ListForActor(models.Actor{ID: primitive.NewObjectID().Hex(), Role: "admin"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListForActorOfficialSeesDepartmentCategories(t *testing.T) {
	svc, store, _, _ := newTestComplaintService()
	seedComplaint(store, triage.CategoryPothole, primitive.NewObjectID())
	seedComplaint(store, triage.CategoryStreetLight, primitive.NewObjectID())
	seedComplaint(store, triage.CategoryGarbageDump, primitive.NewObjectID())

	got, err := svc.ListForActor(models.Actor{
		ID:         primitive.NewObjectID().Hex(),
		Role:       "official",
		Department: "Infrastructure",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Contains(t, []string{triage.CategoryPothole, triage.CategoryStreetLight}, c.Category)
	}
}

func TestListForActorUnmappedDepartmentEmpty(t *testing.T) {
	svc, store, _, _ := newTestComplaintService()
	seedComplaint(store, triage.CategoryPothole, primitive.NewObjectID())

	got, err := svc.ListForActor(models.Actor{
		ID:         primitive.NewObjectID().Hex(),
		Role:       "official",
		Department: "None",
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, store.queried, "unmapped department must not hit the store")
}

func TestUpdateStatusResolvedStampsDateAndNotifies(t *testing.T) {
	svc, store, _, notifier := newTestComplaintService()
	citizen := primitive.NewObjectID()
	c := seedComplaint(store, triage.CategoryGarbageDump, citizen)

	updated, err := svc.UpdateStatus(
		models.Actor{ID: primitive.NewObjectID().Hex(), Role: "admin"},
		c.ID.Hex(),
		&UpdateStatusRequest{Status: models.StatusResolved, ResolutionNote: "cleaned up"},
	)
	require.NoError(t, err)

	assert.Equal(t, models.StatusResolved, updated.Status)
	assert.NotNil(t, updated.ResolutionDate)
	assert.Equal(t, "cleaned up", updated.ResolutionNote)
	assert.Equal(t, []string{models.StatusResolved}, notifier.calls)
}

func TestUpdateStatusOfficialSelfAssigns(t *testing.T) {
	svc, store, _, _ := newTestComplaintService()
	c := seedComplaint(store, triage.CategoryGarbageDump, primitive.NewObjectID())
	official := primitive.NewObjectID()

	updated, err := svc.UpdateStatus(
		models.Actor{ID: official.Hex(), Role: "official", Department: "Health"},
		c.ID.Hex(),
		&UpdateStatusRequest{Status: models.StatusInProgress},
	)
	require.NoError(t, err)

	assert.Equal(t, official, updated.AssignedTo)
	assert.Nil(t, updated.ResolutionDate)
}

func TestUpdateStatusDispatchSetsTime(t *testing.T) {
	svc, store, _, _ := newTestComplaintService()
	c := seedComplaint(store, triage.CategoryGarbageVehicle, primitive.NewObjectID())

	updated, err := svc.UpdateStatus(
		models.Actor{ID: primitive.NewObjectID().Hex(), Role: "admin"},
		c.ID.Hex(),
		&UpdateStatusRequest{
			Status:        models.StatusInProgress,
			VehicleNumber: "KA-01-1234",
			DriverName:    "Suresh",
		},
	)
	require.NoError(t, err)

	assert.Equal(t, "KA-01-1234", updated.VehicleNumber)
	assert.Equal(t, "Suresh", updated.DriverName)
	assert.NotNil(t, updated.DispatchTime)
}
