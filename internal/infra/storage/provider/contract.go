package provider

import "github.com/m04kA/RainbowPaws-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
