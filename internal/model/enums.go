package model

// ── 角色 ──

// Role 用户角色（封闭枚举，边界处校验）
type Role string

const (
	RoleMember Role = "member"
	RoleCoach  Role = "coach"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// Valid 校验角色取值
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleCoach, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// ── 成员/选课状态 ──

// MemberStatus 用户与选课共用的状态枚举
type MemberStatus string

const (
	StatusActive    MemberStatus = "Active"
	StatusInactive  MemberStatus = "Inactive"
	StatusSuspended MemberStatus = "Suspended"
)

// Valid 校验状态取值
func (s MemberStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// ── 课程类型 ──

// ClassType 课程类型（封闭枚举）
type ClassType string

const (
	ClassTypeBoxing   ClassType = "boxing"
	ClassTypeZumba    ClassType = "zumba"
	ClassTypeFootball ClassType = "football"
	ClassTypeMuscle   ClassType = "muscle"
	ClassTypeYoga     ClassType = "yoga"
	ClassTypeCricket  ClassType = "cricket"
	ClassTypeOther    ClassType = "other"
)

// Valid 校验课程类型取值
func (t ClassType) Valid() bool {
	switch t {
	case ClassTypeBoxing, ClassTypeZumba, ClassTypeFootball,
		ClassTypeMuscle, ClassTypeYoga, ClassTypeCricket, ClassTypeOther:
		return true
	}
	return false
}
