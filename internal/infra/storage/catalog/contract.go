package catalog

import "github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
