package models

// Identity описывает аутентифицированного пользователя текущего запроса.
// Значение вычисляется один раз в middleware при разборе токена
// и передается явно во все проверки доступа.
type Identity struct {
	UserUID  string // Уникальный идентификатор пользователя
	Username string // Имя пользователя
	Role     string // Роль пользователя, admin или user
}

// CanAccess сообщает, вправе ли пользователь работать с ресурсами владельца ownerUID.
// Администратору доступны ресурсы любого пользователя.
func (i Identity) CanAccess(ownerUID string) bool {
	return i.Role == RoleAdmin || i.UserUID == ownerUID
}
