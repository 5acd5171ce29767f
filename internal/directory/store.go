package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zirz1911/global-security-hub/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrPersonnelNotFound    = errors.New("personnel not found")
	ErrDuplicateName        = errors.New("an organization with this name already exists")
	// ErrWrongOrganization means the personnel id exists but belongs to a
	// different organization than the one named in the request path. It is
	// deliberately distinct from ErrPersonnelNotFound.
	ErrWrongOrganization = errors.New("personnel does not belong to this organization")
)

// PersonnelAttachedError blocks deletion of an organization that still has
// personnel. Count is reported back to the caller.
type PersonnelAttachedError struct {
	Count int64
}

func (e *PersonnelAttachedError) Error() string {
	return fmt.Sprintf("cannot delete organization with %d personnel", e.Count)
}

// Store is the typed query layer over the relational schema. Both the page
// renderers and the mutation endpoints go through it.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListSummaries returns the slim listing projection, alphabetical by name.
// This pre-sorted order is what the filter engine relies on.
func (s *Store) ListSummaries(ctx context.Context, activeOnly bool) ([]OrgSummary, error) {
	query := s.db.WithContext(ctx).Model(&models.Organization{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var summaries []OrgSummary
	if err := query.
		Select("id", "name", "country", "type", "logo_url").
		Order("name ASC").
		Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return summaries, nil
}

// OrgWithCount is an organization row joined with its personnel count,
// as shown on the admin table.
type OrgWithCount struct {
	models.Organization
	PersonnelCount int64 `json:"personnel_count"`
}

// ListWithPersonnelCounts returns every organization (active or not) with
// its personnel count, alphabetical by name.
func (s *Store) ListWithPersonnelCounts(ctx context.Context) ([]OrgWithCount, error) {
	var orgs []models.Organization
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	rows := make([]OrgWithCount, len(orgs))
	for i, org := range orgs {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Personnel{}).
			Where("organization_id = ?", org.ID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("counting personnel: %w", err)
		}
		rows[i] = OrgWithCount{Organization: org, PersonnelCount: count}
	}
	return rows, nil
}

// GetOrganization loads one organization with its personnel, current
// members first, each group alphabetical.
func (s *Store) GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := s.db.WithContext(ctx).
		Preload("Personnel", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_current DESC, name ASC")
		}).
		First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("loading organization: %w", err)
	}
	return &org, nil
}

// CreateOrganization persists a new organization, enforcing the global
// name uniqueness invariant.
func (s *Store) CreateOrganization(ctx context.Context, org *models.Organization) error {
	var existing models.Organization
	if err := s.db.WithContext(ctx).Where("name = ?", org.Name).First(&existing).Error; err == nil {
		return ErrDuplicateName
	}

	if err := s.db.WithContext(ctx).Create(org).Error; err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}
	return nil
}

// UpdateOrganization replaces the editable fields of an existing
// organization. The target must exist and the new name must not collide
// with another organization.
func (s *Store) UpdateOrganization(ctx context.Context, id uuid.UUID, updated *models.Organization) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("loading organization: %w", err)
	}

	var dup models.Organization
	if err := s.db.WithContext(ctx).
		Where("name = ? AND id <> ?", updated.Name, id).
		First(&dup).Error; err == nil {
		return nil, ErrDuplicateName
	}

	org.Name = updated.Name
	org.FullName = updated.FullName
	org.Country = updated.Country
	org.Type = updated.Type
	org.Description = updated.Description
	org.Website = updated.Website
	org.Email = updated.Email
	org.Phone = updated.Phone
	org.Address = updated.Address
	org.Established = updated.Established
	org.LogoURL = updated.LogoURL
	org.IsActive = updated.IsActive

	if err := s.db.WithContext(ctx).Save(&org).Error; err != nil {
		return nil, fmt.Errorf("updating organization: %w", err)
	}
	return &org, nil
}

// DeleteOrganization removes an organization that has no personnel left.
// There is no cascading delete: a blocked delete reports the exact number
// of attached personnel records.
func (s *Store) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("loading organization: %w", err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Personnel{}).
		Where("organization_id = ?", id).
		Count(&count).Error; err != nil {
		return fmt.Errorf("counting personnel: %w", err)
	}
	if count > 0 {
		return &PersonnelAttachedError{Count: count}
	}

	if err := s.db.WithContext(ctx).Delete(&org).Error; err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}
	return nil
}

// getOwnedPersonnel loads a personnel record and verifies it belongs to
// the given organization.
func (s *Store) getOwnedPersonnel(ctx context.Context, orgID, personnelID uuid.UUID) (*models.Personnel, error) {
	var person models.Personnel
	if err := s.db.WithContext(ctx).First(&person, "id = ?", personnelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonnelNotFound
		}
		return nil, fmt.Errorf("loading personnel: %w", err)
	}
	if person.OrganizationID != orgID {
		return nil, ErrWrongOrganization
	}
	return &person, nil
}

// CreatePersonnel adds a personnel record under an existing organization.
func (s *Store) CreatePersonnel(ctx context.Context, orgID uuid.UUID, person *models.Personnel) error {
	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("loading organization: %w", err)
	}

	person.OrganizationID = orgID
	if err := s.db.WithContext(ctx).Create(person).Error; err != nil {
		return fmt.Errorf("creating personnel: %w", err)
	}
	return nil
}

// UpdatePersonnel replaces the editable fields of a personnel record.
// The organization membership is immutable: the record must already belong
// to orgID.
func (s *Store) UpdatePersonnel(ctx context.Context, orgID, personnelID uuid.UUID, updated *models.Personnel) (*models.Personnel, error) {
	person, err := s.getOwnedPersonnel(ctx, orgID, personnelID)
	if err != nil {
		return nil, err
	}

	person.Name = updated.Name
	person.Position = updated.Position
	person.Rank = updated.Rank
	person.PhotoURL = updated.PhotoURL
	person.Bio = updated.Bio
	person.IsCurrent = updated.IsCurrent
	person.StartDate = updated.StartDate

	if err := s.db.WithContext(ctx).Save(person).Error; err != nil {
		return nil, fmt.Errorf("updating personnel: %w", err)
	}
	return person, nil
}

// DeletePersonnel removes a personnel record after the ownership check.
func (s *Store) DeletePersonnel(ctx context.Context, orgID, personnelID uuid.UUID) error {
	person, err := s.getOwnedPersonnel(ctx, orgID, personnelID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(person).Error; err != nil {
		return fmt.Errorf("deleting personnel: %w", err)
	}
	return nil
}

// DashboardStats are the admin dashboard headline numbers.
type DashboardStats struct {
	TotalOrganizations int64
	TotalPersonnel     int64
	Countries          int64
	Categories         int64
}

// Stats computes the dashboard aggregates.
func (s *Store) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.WithContext(ctx).Model(&models.Organization{}).
		Count(&stats.TotalOrganizations).Error; err != nil {
		return stats, fmt.Errorf("counting organizations: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Personnel{}).
		Count(&stats.TotalPersonnel).Error; err != nil {
		return stats, fmt.Errorf("counting personnel: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Organization{}).
		Distinct("country").Count(&stats.Countries).Error; err != nil {
		return stats, fmt.Errorf("counting countries: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Organization{}).
		Distinct("type").Count(&stats.Categories).Error; err != nil {
		return stats, fmt.Errorf("counting categories: %w", err)
	}
	return stats, nil
}

// RecentlyUpdated returns the n most recently touched organizations.
func (s *Store) RecentlyUpdated(ctx context.Context, n int) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := s.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(n).
		Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("listing recent organizations: %w", err)
	}
	return orgs, nil
}
