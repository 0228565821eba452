package domain

const (
	// Identity parameter keys (caller naming convention)
	KeyName      = "name"
	KeyPartition = "partition"
	KeySubPath   = "sub_path"

	// Lifecycle control keys
	KeyState     = "state"
	KeyCheckMode = "check_mode"

	// Connection parameter keys
	KeyHostname      = "f5_hostname"
	KeyUsername      = "f5_username"
	KeyPassword      = "f5_password"
	KeyPort          = "f5_port"
	KeyValidateCerts = "f5_verify"
)

// ReservedParamKeys lists the control and connection keys that are stripped
// from a caller's parameter set before it becomes a DesiredState. They are
// consumed by the shim itself and must never reach the remote schema.
func ReservedParamKeys() []string {
	return []string{
		KeyState,
		KeyCheckMode,
		KeyHostname,
		KeyUsername,
		KeyPassword,
		KeyPort,
		KeyValidateCerts,
	}
}
