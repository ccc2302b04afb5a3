package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/query"
	"github.com/yukikurage/task-assignment-api/internal/repository"
)

// UserService handles user business logic
type UserService struct {
	store repository.Store
	now   func() time.Time
}

// NewUserService creates a new UserService
func NewUserService(store repository.Store) *UserService {
	return &UserService{
		store: store,
		now:   time.Now,
	}
}

// UserInput is the full client-supplied state of a user
type UserInput struct {
	Name         string
	Email        string
	PendingTasks []string
}

func (in *UserInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	ids := make([]string, 0, len(in.PendingTasks))
	for _, id := range in.PendingTasks {
		ids = append(ids, strings.TrimSpace(id))
	}
	in.PendingTasks = ids
}

func (in *UserInput) validate() error {
	if in.Name == "" || in.Email == "" {
		return ErrUserNameEmailRequired
	}
	for _, id := range in.PendingTasks {
		if !validID(id) {
			return ErrInvalidPendingTaskID
		}
	}
	return nil
}

// CreateUserResult is the outcome of CreateUser
type CreateUserResult struct {
	User *models.User

	// EmailDisambiguated is set when the requested email was taken and the
	// user was stored under a derived one.
	EmailDisambiguated bool
}

// ListUsers runs a list query
func (s *UserService) ListUsers(ctx context.Context, q query.ListQuery) ([]models.User, error) {
	users, err := s.store.Users().List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CountUsers counts the users a list query returns
func (s *UserService) CountUsers(ctx context.Context, q query.ListQuery) (int64, error) {
	count, err := s.store.Users().Count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GetUser returns a user by id
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, ErrInvalidUserID
	}
	return findUser(ctx, s.store, id)
}

// CreateUser stores a new user. If the email is already taken the user is
// stored once more under local+<unix millis>@domain. Tasks listed in
// pendingTasks are claimed from whoever held them.
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*CreateUserResult, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	result := &CreateUserResult{}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		tasks, err := loadTasks(ctx, tx, input.PendingTasks)
		if err != nil {
			return err
		}
		if err := ensureNotCompleted(tasks, input.PendingTasks); err != nil {
			return err
		}

		user := &models.User{Name: input.Name, Email: input.Email}
		err = createInSavepoint(ctx, tx, user)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			user.Email = disambiguateEmail(input.Email, s.now())
			result.EmailDisambiguated = true
			err = createInSavepoint(ctx, tx, user)
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if err := claim(ctx, tx, user, input.PendingTasks); err != nil {
			return err
		}

		result.User, err = findUser(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ReplaceUser overwrites name, email and pendingTasks. Tasks dropped from
// pendingTasks are unassigned if they still point at the user; tasks added are
// taken away from any other user and pointed at this one.
func (s *UserService) ReplaceUser(ctx context.Context, id string, input UserInput) (*models.User, error) {
	if !validID(id) {
		return nil, ErrInvalidUserID
	}
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	var updated *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := findUser(ctx, tx, id)
		if err != nil {
			return err
		}

		if input.Email != user.Email {
			if err := ensureEmailFree(ctx, tx, input.Email, user.ID); err != nil {
				return err
			}
		}

		previous, err := tx.PendingTasks().ListTaskIDs(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to read pending tasks: %w", err)
		}
		removed := difference(previous, input.PendingTasks)
		added := difference(input.PendingTasks, previous)

		tasks, err := loadTasks(ctx, tx, input.PendingTasks)
		if err != nil {
			return err
		}
		if err := ensureNotCompleted(tasks, added); err != nil {
			return err
		}

		coordinator := NewCoordinator(tx)
		if err := coordinator.ReleaseTasks(ctx, removed, user.ID); err != nil {
			return err
		}
		if err := tx.PendingTasks().Remove(ctx, user.ID, removed); err != nil {
			return fmt.Errorf("failed to update pending tasks: %w", err)
		}

		renamed := input.Name != user.Name
		user.Name = input.Name
		user.Email = input.Email
		if err := tx.Users().Update(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		if err := claim(ctx, tx, user, added); err != nil {
			return err
		}
		if renamed {
			if err := coordinator.RenameAssignee(ctx, user.ID, user.Name); err != nil {
				return err
			}
		}

		updated, err = findUser(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteUser deletes a user and unassigns its pending tasks
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrInvalidUserID
	}

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := findUser(ctx, tx, id)
		if err != nil {
			return err
		}

		pending, err := tx.PendingTasks().ListTaskIDs(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to read pending tasks: %w", err)
		}
		if err := NewCoordinator(tx).ReleaseTasks(ctx, pending, user.ID); err != nil {
			return err
		}
		if err := tx.PendingTasks().RemoveAll(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to clear pending tasks: %w", err)
		}
		if err := tx.Users().Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func findUser(ctx context.Context, store repository.Store, id string) (*models.User, error) {
	user, err := store.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func ensureEmailFree(ctx context.Context, store repository.Store, email, ownerID string) error {
	other, err := store.Users().FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up email: %w", err)
	}
	if other.ID != ownerID {
		return ErrEmailTaken
	}
	return nil
}

// loadTasks loads every task in ids and fails unless each requested id matches
// exactly one task. A repeated id counts as a missing task.
func loadTasks(ctx context.Context, store repository.Store, ids []string) ([]models.Task, error) {
	tasks, err := store.Tasks().FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	if len(tasks) != len(ids) {
		return nil, ErrTasksNotExist
	}
	return tasks, nil
}

// ensureNotCompleted rejects the request if any of the tasks named in ids is
// completed.
func ensureNotCompleted(tasks []models.Task, ids []string) error {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, task := range tasks {
		if _, ok := wanted[task.ID]; ok && task.Completed {
			return ErrCompletedTaskAssignment
		}
	}
	return nil
}

// claim hands the tasks to user: they leave every other pendingTasks list,
// point at user and join user's list.
func claim(ctx context.Context, store repository.Store, user *models.User, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}

	coordinator := NewCoordinator(store)
	if err := coordinator.StripFromOthers(ctx, taskIDs, user.ID); err != nil {
		return err
	}
	if err := coordinator.ClaimTasks(ctx, taskIDs, user.ID, user.Name); err != nil {
		return err
	}
	for _, taskID := range taskIDs {
		if err := coordinator.AssignTask(ctx, taskID, user.ID); err != nil {
			return err
		}
	}
	return nil
}

func createInSavepoint(ctx context.Context, store repository.Store, user *models.User) error {
	return store.Transaction(ctx, func(tx repository.Store) error {
		return tx.Users().Create(ctx, user)
	})
}

// disambiguateEmail turns local@domain into local+<unix millis>@domain.
func disambiguateEmail(email string, at time.Time) string {
	suffix := "+" + strconv.FormatInt(at.UnixMilli(), 10)
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email + suffix
	}
	return local + suffix + "@" + domain
}
