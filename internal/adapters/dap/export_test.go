package dap

var DisconnectTimeout = &disconnectTimeout
