package audit

type Module string

const (
	ModuleAppointments Module = "APPOINTMENTS"
	ModuleAccount      Module = "ACCOUNT"
	ModuleUsers        Module = "USERS"
	ModuleRooms        Module = "ROOMS"
)

func (m Module) Label() string {
	switch m {
	case ModuleAppointments:
		return "Agendamento"
	case ModuleAccount:
		return "Minha Conta"
	case ModuleUsers:
		return "Usuários"
	case ModuleRooms:
		return "Salas"
	}
	return string(m)
}

type Action string

const (
	ActionAppointmentCreated   Action = "appointment_created"
	ActionAppointmentConfirmed Action = "appointment_confirmed"
	ActionAppointmentCancelled Action = "appointment_cancelled"
	ActionAppointmentConflict  Action = "appointment_conflict"

	ActionLogin          Action = "login"
	ActionLogout         Action = "logout"
	ActionSignUp         Action = "sign_up"
	ActionProfileUpdated Action = "profile_updated"
	ActionEmailUpdated   Action = "email_updated"

	ActionUserUpdated     Action = "user_updated"
	ActionUserActivated   Action = "user_activated"
	ActionUserDeactivated Action = "user_deactivated"
	ActionPermissionsSet  Action = "permissions_updated"
	ActionLogsExported    Action = "logs_exported"

	ActionRoomsCreated Action = "rooms_created"
)

var actionModules = map[Action]Module{
	ActionAppointmentCreated:   ModuleAppointments,
	ActionAppointmentConfirmed: ModuleAppointments,
	ActionAppointmentCancelled: ModuleAppointments,
	ActionAppointmentConflict:  ModuleAppointments,

	ActionLogin:          ModuleAccount,
	ActionLogout:         ModuleAccount,
	ActionSignUp:         ModuleAccount,
	ActionProfileUpdated: ModuleAccount,
	ActionEmailUpdated:   ModuleAccount,

	ActionUserUpdated:     ModuleUsers,
	ActionUserActivated:   ModuleUsers,
	ActionUserDeactivated: ModuleUsers,
	ActionPermissionsSet:  ModuleUsers,
	ActionLogsExported:    ModuleUsers,

	ActionRoomsCreated: ModuleRooms,
}

var actionLabels = map[Action]string{
	ActionAppointmentCreated:   "Criação de agendamento",
	ActionAppointmentConfirmed: "Confirmação de agendamento",
	ActionAppointmentCancelled: "Cancelamento de agendamento",
	ActionAppointmentConflict:  "Conflito de horário",
	ActionLogin:                "Login",
	ActionLogout:               "Logout",
	ActionSignUp:               "Cadastro",
	ActionProfileUpdated:       "Atualização de perfil",
	ActionEmailUpdated:         "Atualização de e-mail",
	ActionUserUpdated:          "Atualização de usuário",
	ActionUserActivated:        "Ativação de usuário",
	ActionUserDeactivated:      "Desativação de usuário",
	ActionPermissionsSet:       "Alteração de permissões",
	ActionLogsExported:         "Exportação de logs",
	ActionRoomsCreated:         "Cadastro de salas",
}

func (a Action) Module() Module {
	if m, ok := actionModules[a]; ok {
		return m
	}
	return ModuleAccount
}

func (a Action) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return string(a)
}
