package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medcouncil/registry/internal/examination/domain"
	"github.com/medcouncil/registry/internal/examination/repository"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	licenserepository "github.com/medcouncil/registry/internal/license/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&licensedomain.License{},
		&domain.Exam{},
		&domain.ExamCandidate{},
		&domain.ExamRegistration{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          gdb,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		LicenseRepo: licenserepository.Provide(),
	})
	return svc, gdb
}

func seedCandidate(t *testing.T, svc domain.Service, internCode string) {
	t.Helper()
	first := "Test"
	_, err := svc.CreateCandidate(context.Background(), domain.CreateCandidateRequest{
		InternCode: internCode,
		FirstName:  &first,
	})
	require.NoError(t, err)
}

func seedExam(t *testing.T, svc domain.Service, title string) domain.Exam {
	t.Helper()
	exam, err := svc.CreateExam(context.Background(), domain.CreateExamRequest{
		Title:    title,
		ExamDate: time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return exam
}

func examCount(t *testing.T, gdb *gorm.DB, internCode string) int {
	t.Helper()
	var candidate domain.ExamCandidate
	require.NoError(t, gdb.Where("intern_code = ?", internCode).First(&candidate).Error)
	return candidate.NumberOfExams
}

func TestRegister_CountsNonAbsentResults(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()

	seedCandidate(t, svc, "MDC-1001")
	exam := seedExam(t, svc, "Part I MCQ")

	require.Equal(t, 0, examCount(t, gdb, "MDC-1001"))

	results := []string{"Pass", "Fail", domain.ResultAbsent}
	registrations := make([]domain.ExamRegistration, 0, len(results))
	for range results {
		reg, err := svc.Register(ctx, domain.RegisterRequest{
			ExamUUID:   exam.UUID,
			InternCode: "MDC-1001",
		})
		require.NoError(t, err)
		registrations = append(registrations, reg)
	}
	for i, result := range results {
		r := result
		_, err := svc.UpdateRegistration(ctx, registrations[i].UUID, domain.UpdateRegistrationRequest{Result: &r})
		require.NoError(t, err)
	}

	// Absent rows do not count.
	require.Equal(t, 2, examCount(t, gdb, "MDC-1001"))

	require.NoError(t, svc.DeleteRegistration(ctx, registrations[1].UUID))
	require.Equal(t, 1, examCount(t, gdb, "MDC-1001"))
}

func TestUpdateRegistration_MoveRecountsBothCandidates(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()

	seedCandidate(t, svc, "MDC-2001")
	seedCandidate(t, svc, "MDC-2002")
	exam := seedExam(t, svc, "Part II Clinical")

	reg, err := svc.Register(ctx, domain.RegisterRequest{
		ExamUUID:   exam.UUID,
		InternCode: "MDC-2001",
	})
	require.NoError(t, err)
	require.Equal(t, 1, examCount(t, gdb, "MDC-2001"))
	require.Equal(t, 0, examCount(t, gdb, "MDC-2002"))

	target := "MDC-2002"
	_, err = svc.UpdateRegistration(ctx, reg.UUID, domain.UpdateRegistrationRequest{InternCode: &target})
	require.NoError(t, err)

	require.Equal(t, 0, examCount(t, gdb, "MDC-2001"))
	require.Equal(t, 1, examCount(t, gdb, "MDC-2002"))
}

func TestUpdateRegistration_RejectsUnknownResult(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	seedCandidate(t, svc, "MDC-3001")
	exam := seedExam(t, svc, "Part I MCQ")

	reg, err := svc.Register(ctx, domain.RegisterRequest{
		ExamUUID:   exam.UUID,
		InternCode: "MDC-3001",
	})
	require.NoError(t, err)

	bogus := "Deferred"
	_, err = svc.UpdateRegistration(ctx, reg.UUID, domain.UpdateRegistrationRequest{Result: &bogus})
	require.ErrorIs(t, err, domain.ErrInvalidResult)
}

func TestRegister_UnknownExamRejected(t *testing.T) {
	svc, _ := setupService(t)

	seedCandidate(t, svc, "MDC-4001")

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		ExamUUID:   "00000000-0000-0000-0000-000000000000",
		InternCode: "MDC-4001",
	})
	require.ErrorIs(t, err, domain.ErrInvalidExam)
}
