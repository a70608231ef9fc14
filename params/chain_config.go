package params

// SS58Format is the address prefix Shinde accounts are displayed with.
const SS58Format uint16 = 42

// ProtocolID names the network protocol of Shinde nodes.
const ProtocolID = "shinde"

const (
	DevelopmentName = "Shinde Development"
	DevelopmentID   = "shinde-dev"

	LocalName = "Shinde Local Testnet"
	LocalID   = "shinde-local"
)

// Client identity reported over RPC and telemetry.
const (
	ClientName    = "Shinde Node"
	ClientVersion = "0.1.0"
)
