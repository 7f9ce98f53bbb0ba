package simulator

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/triage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBinStore struct {
	bins       []*models.Bin
	updateErr  error
	updateCnt  int
	lastLevel  int
	lastStatus string
}

func (f *fakeBinStore) FindAll() ([]*models.Bin, error) {
	return f.bins, nil
}

func (f *fakeBinStore) UpdateFill(id string, fillLevel int, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updateCnt++
	f.lastLevel = fillLevel
	f.lastStatus = status
	return nil
}

type fakeComplaintStore struct {
	created   []*models.Complaint
	createErr error
}

func (f *fakeComplaintStore) Create(c *models.Complaint) (*models.Complaint, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, c)
	return c, nil
}

func newTestSimulator(bins *fakeBinStore, complaints *fakeComplaintStore, binsPerTick int) *Simulator {
	s := New(bins, complaints, nil, primitive.NewObjectID(), time.Minute, binsPerTick)
	s.SetRand(rand.New(rand.NewPCG(1, 2)))
	return s
}

func testBin(fill int, status string) *models.Bin {
	return &models.Bin{
		ID:        primitive.NewObjectID(),
		Code:      "IoT-BIN-001",
		FillLevel: fill,
		Status:    status,
		Location:  models.Location{Lat: 31.326, Lng: 75.5762, Address: "Model Town Market"},
	}
}

func TestTickAdvancesFillWithinDeltaRange(t *testing.T) {
	bins := &fakeBinStore{bins: []*models.Bin{testBin(10, models.BinStatusNormal)}}
	complaints := &fakeComplaintStore{}
	s := newTestSimulator(bins, complaints, 1)

	s.Tick()

	assert.Equal(t, 1, bins.updateCnt)
	assert.GreaterOrEqual(t, bins.lastLevel, 10+minFillDelta)
	assert.Less(t, bins.lastLevel, 10+maxFillDelta)
	assert.Equal(t, models.BinStatusNormal, bins.lastStatus)
	assert.Empty(t, complaints.created)
}

func TestTickClampsFillLevelAt100(t *testing.T) {
	bin := testBin(98, models.BinStatusCritical)
	bins := &fakeBinStore{bins: []*models.Bin{bin}}
	s := newTestSimulator(bins, &fakeComplaintStore{}, 1)

	for i := 0; i < 20; i++ {
		s.Tick()
		assert.LessOrEqual(t, bins.lastLevel, 100)
		assert.GreaterOrEqual(t, bins.lastLevel, 0)
	}
	assert.Equal(t, 100, bin.FillLevel)
}

func TestThresholdCrossingFilesOneComplaint(t *testing.T) {
	bin := testBin(88, models.BinStatusNormal)
	bins := &fakeBinStore{bins: []*models.Bin{bin}}
	complaints := &fakeComplaintStore{}
	s := newTestSimulator(bins, complaints, 1)

	// 88 + [5,15) always crosses 90.
	s.Tick()

	require.Len(t, complaints.created, 1)
	filed := complaints.created[0]
	assert.Equal(t, triage.CategoryGarbageDump, filed.Category)
	assert.Equal(t, models.SeverityCritical, filed.Severity)
	assert.Equal(t, models.StatusPending, filed.Status)
	assert.Equal(t, s.systemActor, filed.CreatedBy)
	assert.Contains(t, filed.Description, "Model Town Market")
	assert.Equal(t, models.BinStatusCritical, bin.Status)
}

func TestAlreadyCriticalBinDoesNotRefile(t *testing.T) {
	bin := testBin(92, models.BinStatusCritical)
	bins := &fakeBinStore{bins: []*models.Bin{bin}}
	complaints := &fakeComplaintStore{}
	s := newTestSimulator(bins, complaints, 1)

	for i := 0; i < 10; i++ {
		s.Tick()
	}

	assert.Empty(t, complaints.created, "Critical status must dedup complaint filing")
}

func TestEmptyRearmsThresholdGuard(t *testing.T) {
	bin := testBin(88, models.BinStatusNormal)
	bins := &fakeBinStore{bins: []*models.Bin{bin}}
	complaints := &fakeComplaintStore{}
	s := newTestSimulator(bins, complaints, 1)

	s.Tick()
	require.Len(t, complaints.created, 1)

	// Empty operation: level zero, Normal status.
	bin.FillLevel = 0
	bin.Status = models.BinStatusNormal

	// Fill back up past the threshold; exactly one more complaint.
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	assert.Len(t, complaints.created, 2)
}

func TestSamePickTwicePerTickFilesOnce(t *testing.T) {
	// One bin, two picks per tick: the first advance may cross the
	// threshold, the second sees the in-memory Critical status.
	bin := testBin(88, models.BinStatusNormal)
	bins := &fakeBinStore{bins: []*models.Bin{bin}}
	complaints := &fakeComplaintStore{}
	s := newTestSimulator(bins, complaints, 2)

	s.Tick()

	assert.Len(t, complaints.created, 1)
	assert.Equal(t, 2, bins.updateCnt)
}

func TestComplaintFailureKeepsBinRearmed(t *testing.T) {
	bin := testBin(88, models.BinStatusNormal)
	bins := &fakeBinStore{bins: []*models.Bin{bin}}
	complaints := &fakeComplaintStore{createErr: errors.New("insert failed")}
	s := newTestSimulator(bins, complaints, 1)

	s.Tick()

	// Fill advanced but the bin stays Normal so the crossing retries.
	assert.Empty(t, complaints.created)
	assert.Equal(t, models.BinStatusNormal, bin.Status)
	assert.GreaterOrEqual(t, bin.FillLevel, 90)

	complaints.createErr = nil
	s.Tick()
	assert.Len(t, complaints.created, 1)
}

func TestPersistFailureAfterFilingRefilesOnNextCrossing(t *testing.T) {
	bin := testBin(88, models.BinStatusNormal)
	bins := &fakeBinStore{bins: []*models.Bin{bin}, updateErr: errors.New("write failed")}
	complaints := &fakeComplaintStore{}
	s := newTestSimulator(bins, complaints, 1)

	// Complaint succeeds, persist fails: the bin stays Normal in memory
	// and in the store, so the guard is not armed.
	s.Tick()
	require.Len(t, complaints.created, 1)
	assert.Equal(t, models.BinStatusNormal, bin.Status)

	// Store recovers; the next crossing files again.
	bins.updateErr = nil
	s.Tick()
	assert.Len(t, complaints.created, 2)
	assert.Equal(t, models.BinStatusCritical, bin.Status)
}

func TestBinUpdateFailureIsIsolated(t *testing.T) {
	bin := testBin(50, models.BinStatusNormal)
	bins := &fakeBinStore{bins: []*models.Bin{bin}, updateErr: errors.New("write failed")}
	s := newTestSimulator(bins, &fakeComplaintStore{}, 3)

	// Must not panic and must not mutate the in-memory record.
	s.Tick()
	assert.Equal(t, 50, bin.FillLevel)
}

func TestTickWithoutSystemActorSkips(t *testing.T) {
	bins := &fakeBinStore{bins: []*models.Bin{testBin(88, models.BinStatusNormal)}}
	complaints := &fakeComplaintStore{}
	s := New(bins, complaints, nil, primitive.NilObjectID, time.Minute, 1)

	s.Tick()

	assert.Zero(t, bins.updateCnt)
	assert.Empty(t, complaints.created)
}

func TestStartStop(t *testing.T) {
	bins := &fakeBinStore{}
	s := New(bins, &fakeComplaintStore{}, nil, primitive.NewObjectID(), 10*time.Millisecond, 1)

	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	s.Stop() // idempotent
}
