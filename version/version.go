package version

var (
	// GitCommit is the current HEAD set using ldflags.
	GitCommit string

	// Version is the built softwares version.
	Version = LightClientSemVer
)

func init() {
	if GitCommit != "" {
		Version += "-" + GitCommit
	}
}

const (
	// LightClientSemVer is the current version of the GRANDPA light client.
	// It's the Semantic Version of the software.
	LightClientSemVer = "0.1.0"

	// ClientType is the ICS-02 client type implemented.
	ClientType = "10-grandpa"
)

// Protocol is used for implementation agnostic versioning.
type Protocol uint64

// Uint64 returns the Protocol version as a uint64.
func (p Protocol) Uint64() uint64 {
	return uint64(p)
}

var (
	// StoreProtocol versions the layout of the light client store.
	StoreProtocol Protocol = 1
)
