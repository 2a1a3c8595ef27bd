package appointment

import (
	"context"
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAppointments(t *testing.T, repo *memAppointmentRepo, appts ...models.Appointment) {
	t.Helper()
	for i := range appts {
		require.NoError(t, repo.Create(&appts[i]))
	}
}

func TestListForActorBucketsByStatus(t *testing.T) {
	svc, _, appointments, _ := newTestEngine()
	seedAppointments(t, appointments,
		models.Appointment{ID: "a1", ProviderID: "prov-1", PatientID: "pat-1", Date: "2026-03-09", Time: "09:00", Status: models.StatusUpcoming},
		models.Appointment{ID: "a2", ProviderID: "prov-1", PatientID: "pat-1", Date: "2026-02-02", Time: "10:00", Status: models.StatusCompleted},
		models.Appointment{ID: "a3", ProviderID: "prov-1", PatientID: "pat-1", Date: "2026-02-09", Time: "09:00", Status: models.StatusCancelled},
		models.Appointment{ID: "a4", ProviderID: "prov-1", PatientID: "pat-2", Date: "2026-03-04", Time: "09:00", Status: models.StatusUpcoming},
		models.Appointment{ID: "a5", ProviderID: "prov-2", PatientID: "pat-1", Date: "2026-03-11", Time: "09:00", Status: models.StatusUpcoming},
	)

	// A patient sees their own appointments across providers.
	buckets, err := svc.ListForActor(context.Background(), Actor{ID: "pat-1", Role: RolePatient})
	require.NoError(t, err)
	require.Len(t, buckets.Upcoming, 2)
	assert.Equal(t, "a1", buckets.Upcoming[0].ID) // date order
	assert.Equal(t, "a5", buckets.Upcoming[1].ID)
	require.Len(t, buckets.Completed, 1)
	assert.Equal(t, "a2", buckets.Completed[0].ID)
	require.Len(t, buckets.Cancelled, 1)

	// A provider sees their own calendar across patients.
	buckets, err = svc.ListForActor(context.Background(), Actor{ID: "prov-1", Role: RoleProvider})
	require.NoError(t, err)
	assert.Len(t, buckets.Upcoming, 2)
	assert.Len(t, buckets.Completed, 1)
	assert.Len(t, buckets.Cancelled, 1)

	_, err = svc.ListForActor(context.Background(), Actor{ID: "pat-1", Role: "admin"})
	assert.Equal(t, CodeNotAuthorized, CodeOf(err))
}

func TestListForActorEmptyBucketsAreNotNil(t *testing.T) {
	svc, _, _, _ := newTestEngine()

	buckets, err := svc.ListForActor(context.Background(), Actor{ID: "pat-1", Role: RolePatient})
	require.NoError(t, err)
	assert.NotNil(t, buckets.Upcoming)
	assert.NotNil(t, buckets.Completed)
	assert.NotNil(t, buckets.Cancelled)
	assert.Empty(t, buckets.Upcoming)
}

func TestListPatientHistoryScopesToProviderPair(t *testing.T) {
	svc, _, appointments, _ := newTestEngine()
	seedAppointments(t, appointments,
		models.Appointment{ID: "a1", ProviderID: "prov-1", PatientID: "pat-1", Date: "2026-03-09", Time: "09:00", Status: models.StatusUpcoming},
		models.Appointment{ID: "a2", ProviderID: "prov-2", PatientID: "pat-1", Date: "2026-03-10", Time: "09:00", Status: models.StatusUpcoming},
	)

	buckets, err := svc.ListPatientHistory(context.Background(), "prov-1", "pat-1")
	require.NoError(t, err)
	require.Len(t, buckets.Upcoming, 1)
	assert.Equal(t, "a1", buckets.Upcoming[0].ID)

	// The cross-provider view includes both.
	buckets, err = svc.ListAllForPatient(context.Background(), "pat-1")
	require.NoError(t, err)
	assert.Len(t, buckets.Upcoming, 2)

	_, err = svc.ListPatientHistory(context.Background(), "prov-1", "ghost")
	assert.Equal(t, CodeNotFound, CodeOf(err))
	_, err = svc.ListAllForPatient(context.Background(), "ghost")
	assert.Equal(t, CodeNotFound, CodeOf(err))
}
