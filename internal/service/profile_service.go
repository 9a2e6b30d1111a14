package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/dvidovic/devconnect/internal/domain"
	"github.com/dvidovic/devconnect/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidDate     = errors.New("invalid date")
)

// InvalidDateError names the date field that failed to parse. It matches
// ErrInvalidDate under errors.Is.
type InvalidDateError struct {
	Field string
}

func (e *InvalidDateError) Error() string {
	return "invalid " + e.Field + " date"
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

type ProfileService struct {
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	uploadDir   string
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	uploadDir string,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		uploadDir:   uploadDir,
	}
}

// SkillList accepts either a JSON array of strings or a single
// comma-separated string; entries are trimmed either way.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = trimSkills(list)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = trimSkills(strings.Split(raw, ","))
	return nil
}

func trimSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

type ProfileInput struct {
	Status    string    `json:"status"`
	Skills    SkillList `json:"skills"`
	Company   string    `json:"company"`
	Website   string    `json:"website"`
	Location  string    `json:"location"`
	Bio       string    `json:"bio"`
	Youtube   string    `json:"youtube"`
	Twitter   string    `json:"twitter"`
	Instagram string    `json:"instagram"`
	Linkedin  string    `json:"linkedin"`
	Facebook  string    `json:"facebook"`
	Github    string    `json:"github"`
}

// Upsert creates or replaces the caller's profile. Optional URL fields are
// normalized to https before storage.
func (s *ProfileService) Upsert(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.Profile, error) {
	profile := &domain.Profile{
		User:     userID,
		Status:   input.Status,
		Skills:   input.Skills,
		Company:  input.Company,
		Website:  normalizeURL(input.Website),
		Location: input.Location,
		Bio:      input.Bio,
		Social: domain.Social{
			Youtube:   normalizeURL(input.Youtube),
			Twitter:   normalizeURL(input.Twitter),
			Instagram: normalizeURL(input.Instagram),
			Linkedin:  normalizeURL(input.Linkedin),
			Facebook:  normalizeURL(input.Facebook),
			Github:    normalizeURL(input.Github),
		},
		Date: time.Now(),
	}

	stored, err := s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("upserting profile: %w", err)
	}
	return stored, nil
}

func (s *ProfileService) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profileRepo.List(ctx)
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (s *ProfileService) AddExperience(ctx context.Context, userID primitive.ObjectID, input ExperienceInput) (*domain.Profile, error) {
	from, to, err := parseDateRange(input.From, input.To)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetByUser(ctx, userID); err != nil {
		return nil, err
	}

	exp := domain.Experience{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        from,
		To:          to,
		Current:     input.Current,
		Description: input.Description,
	}

	if err := s.profileRepo.PrependExperience(ctx, userID, exp); err != nil {
		return nil, fmt.Errorf("adding experience: %w", err)
	}

	return s.GetByUser(ctx, userID)
}

func (s *ProfileService) DeleteExperience(ctx context.Context, userID, expID primitive.ObjectID) (*domain.Profile, error) {
	if _, err := s.GetByUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.profileRepo.RemoveExperience(ctx, userID, expID); err != nil {
		return nil, fmt.Errorf("removing experience: %w", err)
	}

	return s.GetByUser(ctx, userID)
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (s *ProfileService) AddEducation(ctx context.Context, userID primitive.ObjectID, input EducationInput) (*domain.Profile, error) {
	from, to, err := parseDateRange(input.From, input.To)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetByUser(ctx, userID); err != nil {
		return nil, err
	}

	edu := domain.Education{
		ID:           primitive.NewObjectID(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      input.Current,
		Description:  input.Description,
	}

	if err := s.profileRepo.PrependEducation(ctx, userID, edu); err != nil {
		return nil, fmt.Errorf("adding education: %w", err)
	}

	return s.GetByUser(ctx, userID)
}

func (s *ProfileService) DeleteEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*domain.Profile, error) {
	if _, err := s.GetByUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.profileRepo.RemoveEducation(ctx, userID, eduID); err != nil {
		return nil, fmt.Errorf("removing education: %w", err)
	}

	return s.GetByUser(ctx, userID)
}

// Upload stores an avatar image under the configured upload directory with a
// random filename and records it on the user.
func (s *ProfileService) Upload(ctx context.Context, userID primitive.ObjectID, filename string, file io.Reader) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return fmt.Errorf("creating upload dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(filename)
	dst, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return fmt.Errorf("writing upload file: %w", err)
	}

	if err := s.userRepo.SetAvatar(ctx, userID, name); err != nil {
		return fmt.Errorf("recording avatar: %w", err)
	}
	return nil
}

// DeleteAccount removes the caller's posts, profile and user record.
// Best-effort, not atomic: posts and profile are removed first (concurrently)
// and the user record only after both succeed, so a partial failure can leave
// content gone with the account intact but never an orphaned profile.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.postRepo.DeleteByUser(gctx, userID)
	})
	g.Go(func() error {
		return s.profileRepo.DeleteByUser(gctx, userID)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("deleting account data: %w", err)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// normalizeURL forces https on optional link fields, tolerating bare hosts
// and http schemes. Empty input stays empty.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if i := strings.Index(raw, "://"); i >= 0 {
		raw = raw[i+len("://"):]
	}
	return "https://" + raw
}

func parseDateRange(fromStr, toStr string) (time.Time, *time.Time, error) {
	from, err := parseDate(fromStr)
	if err != nil {
		return time.Time{}, nil, &InvalidDateError{Field: "from"}
	}

	if toStr == "" {
		return from, nil, nil
	}

	to, err := parseDate(toStr)
	if err != nil {
		return time.Time{}, nil, &InvalidDateError{Field: "to"}
	}
	return from, &to, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
