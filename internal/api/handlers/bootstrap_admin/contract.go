package bootstrap_admin

import (
	"context"

	"github.com/avelsk/NSD-SchedulingService/internal/service/staff"
)

type StaffService interface {
	BootstrapAdmin(ctx context.Context, req *staff.BootstrapAdminRequest) (*staff.StaffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
