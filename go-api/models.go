package main

import "time"

// User is the persisted auth user record.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:100;not null"`
	Name         string    `gorm:"size:100;not null"`
	PasswordHash string    `gorm:"size:200;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

// List belongs to exactly one user. The (owner, name) pair is unique.
type List struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex:idx_lists_owner_name,priority:2;size:100;not null"`
	OwnerUserID uint      `gorm:"uniqueIndex:idx_lists_owner_name,priority:1;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (List) TableName() string { return "lists" }

// Task carries its own copy of the owner id, stamped at creation time.
type Task struct {
	ID          uint      `gorm:"primaryKey"`
	Text        string    `gorm:"size:200;not null"`
	ListID      uint      `gorm:"index;not null"`
	OwnerUserID uint      `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Task) TableName() string { return "tasks" }

// ListSummary is a List plus the number of tasks currently in it.
type ListSummary struct {
	List
	TaskCount int
}
