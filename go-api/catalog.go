package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// Catalog is the list/task CRUD surface. Every call takes the acting user
// explicitly; nothing is read from ambient request state.
type Catalog struct {
	db      *gorm.DB
	owners  OwnershipRegistry
	cascade bool
}

func NewCatalog(db *gorm.DB, owners OwnershipRegistry, cascade bool) *Catalog {
	return &Catalog{db: db, owners: owners, cascade: cascade}
}

/* ===================== Lists ====================== */

// CreateList returns ErrListExists when user already has a list with this name.
func (c *Catalog) CreateList(ctx context.Context, user uint, name string) (List, error) {
	name = strings.TrimSpace(name)
	if err := validateListName(name); err != nil {
		return List{}, err
	}

	var count int64
	if err := c.db.WithContext(ctx).Model(&List{}).
		Where("owner_user_id = ? AND name = ?", user, name).
		Count(&count).Error; err != nil {
		return List{}, fmt.Errorf("check list name: %w", err)
	}
	if count > 0 {
		return List{}, ErrListExists
	}

	l := List{Name: name, OwnerUserID: user}
	if err := c.db.WithContext(ctx).Create(&l).Error; err != nil {
		// lost a race with a concurrent create; the unique index caught it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return List{}, ErrListExists
		}
		return List{}, fmt.Errorf("create list: %w", err)
	}
	return l, nil
}

// ListLists returns user's lists in insertion order.
func (c *Catalog) ListLists(ctx context.Context, user uint) ([]List, error) {
	return findListsByOwner(c.db.WithContext(ctx), user)
}

// ListSummaries is ListLists with a task count per list.
func (c *Catalog) ListSummaries(ctx context.Context, user uint) ([]ListSummary, error) {
	lists, err := c.ListLists(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return []ListSummary{}, nil
	}
	ids := make([]uint, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}

	var rows []struct {
		ListID uint
		N      int
	}
	if err := c.db.WithContext(ctx).Model(&Task{}).
		Select("list_id, count(*) as n").
		Where("list_id IN ?", ids).
		Group("list_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.ListID] = r.N
	}

	out := make([]ListSummary, 0, len(lists))
	for _, l := range lists {
		out = append(out, ListSummary{List: l, TaskCount: counts[l.ID]})
	}
	return out, nil
}

// GetList loads a list the user may view.
func (c *Catalog) GetList(ctx context.Context, user, listID uint) (List, error) {
	l, err := findList(c.db.WithContext(ctx), listID)
	if err != nil {
		return List{}, err
	}
	if !c.owners.CanViewList(user, l) {
		c.denied(user, "view list", listID)
		return List{}, ErrForbidden
	}
	return l, nil
}

// DeleteList removes the list, and its tasks when cascading.
func (c *Catalog) DeleteList(ctx context.Context, user, listID uint) error {
	db := c.db.WithContext(ctx)
	l, err := findList(db, listID)
	if err != nil {
		return err
	}
	if !c.owners.CanMutateList(user, l) {
		c.denied(user, "delete list", listID)
		return ErrForbidden
	}

	if !c.cascade {
		if err := db.Delete(&List{}, l.ID).Error; err != nil {
			return fmt.Errorf("delete list %d: %w", l.ID, err)
		}
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", l.ID).Delete(&Task{}).Error; err != nil {
			return fmt.Errorf("delete tasks of list %d: %w", l.ID, err)
		}
		if err := tx.Delete(&List{}, l.ID).Error; err != nil {
			return fmt.Errorf("delete list %d: %w", l.ID, err)
		}
		return nil
	})
}

/* ===================== Tasks ====================== */

// CreateTask stamps the new task with user as its owner.
func (c *Catalog) CreateTask(ctx context.Context, user, listID uint, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if err := validateTaskText(text); err != nil {
		return Task{}, err
	}
	db := c.db.WithContext(ctx)
	l, err := findList(db, listID)
	if err != nil {
		return Task{}, err
	}
	if !c.owners.CanCreateTask(user, l) {
		c.denied(user, "add task to list", listID)
		return Task{}, ErrForbidden
	}

	t := Task{Text: text, ListID: l.ID, OwnerUserID: user}
	if err := db.Create(&t).Error; err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// ListTasks returns the list and its tasks in insertion order.
func (c *Catalog) ListTasks(ctx context.Context, user, listID uint) (List, []Task, error) {
	l, err := c.GetList(ctx, user, listID)
	if err != nil {
		return List{}, nil, err
	}
	tasks, err := findTasksByList(c.db.WithContext(ctx), l.ID)
	if err != nil {
		return List{}, nil, err
	}
	return l, tasks, nil
}

// GetTask loads a task the user may change.
func (c *Catalog) GetTask(ctx context.Context, user, taskID uint) (Task, error) {
	return c.authorizeTask(c.db.WithContext(ctx), user, taskID, "open task")
}

// EditTask replaces the task text. id, list and owner never change.
func (c *Catalog) EditTask(ctx context.Context, user, taskID uint, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if err := validateTaskText(text); err != nil {
		return Task{}, err
	}
	db := c.db.WithContext(ctx)
	t, err := c.authorizeTask(db, user, taskID, "edit task")
	if err != nil {
		return Task{}, err
	}
	if err := db.Model(&t).Update("text", text).Error; err != nil {
		return Task{}, fmt.Errorf("update task %d: %w", t.ID, err)
	}
	t.Text = text
	return t, nil
}

// DeleteTask removes exactly one task and returns what was removed.
func (c *Catalog) DeleteTask(ctx context.Context, user, taskID uint) (Task, error) {
	db := c.db.WithContext(ctx)
	t, err := c.authorizeTask(db, user, taskID, "delete task")
	if err != nil {
		return Task{}, err
	}
	if err := db.Delete(&Task{}, t.ID).Error; err != nil {
		return Task{}, fmt.Errorf("delete task %d: %w", t.ID, err)
	}
	return t, nil
}

func (c *Catalog) authorizeTask(db *gorm.DB, user, taskID uint, action string) (Task, error) {
	t, err := findTask(db, taskID)
	if err != nil {
		return Task{}, err
	}
	if c.owners.Strict() {
		l, err := findList(db, t.ListID)
		if err != nil {
			return Task{}, err
		}
		if !c.owners.CanMutateList(user, l) {
			c.denied(user, action, taskID)
			return Task{}, ErrForbidden
		}
	}
	if !c.owners.CanMutateTask(user, t) {
		c.denied(user, action, taskID)
		return Task{}, ErrForbidden
	}
	return t, nil
}

func (c *Catalog) denied(user uint, action string, id uint) {
	log.Printf("[catalog] user %d denied: %s %d", user, action, id)
}

/* ===================== Repository helpers ====================== */

func findList(db *gorm.DB, id uint) (List, error) {
	var l List
	err := db.First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return List{}, ErrNotFound
	} else if err != nil {
		return List{}, fmt.Errorf("find list %d: %w", id, err)
	}
	return l, nil
}

func findTask(db *gorm.DB, id uint) (Task, error) {
	var t Task
	err := db.First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Task{}, ErrNotFound
	} else if err != nil {
		return Task{}, fmt.Errorf("find task %d: %w", id, err)
	}
	return t, nil
}

func findListsByOwner(db *gorm.DB, owner uint) ([]List, error) {
	var out []List
	if err := db.Where("owner_user_id = ?", owner).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find lists by owner: %w", err)
	}
	return out, nil
}

func findTasksByList(db *gorm.DB, listID uint) ([]Task, error) {
	var out []Task
	if err := db.Where("list_id = ?", listID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find tasks by list: %w", err)
	}
	return out, nil
}
