package domain

// Role роль пользователя, выданная сервисом аутентификации
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleAdvisor Role = "advisor"
)

// AdminRole уровень доступа сотрудника
type AdminRole string

const (
	AdminRoleAdvisor    AdminRole = "ADVISOR"
	AdminRoleAdmin      AdminRole = "ADMIN"
	AdminRoleSuperAdmin AdminRole = "SUPER_ADMIN"
)

// Actor текущий пользователь запроса
// Сервис не проверяет учётные данные, а только авторизует действия по этому факту
type Actor struct {
	ID        int64
	Role      Role
	AdminRole AdminRole
}

// IsAdvisor возвращает true для консультантов
// Консультант - это либо роль advisor, либо сотрудник с уровнем ADVISOR
func (a Actor) IsAdvisor() bool {
	return a.Role == RoleAdvisor || (a.Role == RoleAdmin && a.AdminRole == AdminRoleAdvisor)
}

// IsDispatcher возвращает true для администраторов, распределяющих заявки
func (a Actor) IsDispatcher() bool {
	return a.Role == RoleAdmin && (a.AdminRole == AdminRoleAdmin || a.AdminRole == AdminRoleSuperAdmin)
}

// IsAdvisorSelf возвращает true, если пользователь - консультант с указанным ID
func (a Actor) IsAdvisorSelf(advisorID int64) bool {
	return a.IsAdvisor() && a.ID == advisorID
}

// CanManageAdvisor возвращает true, если пользователь может менять данные консультанта
func (a Actor) CanManageAdvisor(advisorID int64) bool {
	return a.IsAdvisorSelf(advisorID) || a.IsDispatcher()
}

// IsValidRole проверяет роль
func IsValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin || r == RoleAdvisor
}

// IsValidAdminRole проверяет уровень доступа сотрудника
func IsValidAdminRole(r AdminRole) bool {
	return r == AdminRoleAdvisor || r == AdminRoleAdmin || r == AdminRoleSuperAdmin
}
