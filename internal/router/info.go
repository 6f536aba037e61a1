package router

// ServerName is the implementation name announced during the handshake.
const ServerName = "compcat"

// Version is the default server version.
const Version = "1.0.0"

// Instructions tells clients how to use the server.
const Instructions = "This server provides access to a library of React components and their documentation. " +
	"Use the available tools to list, search, and get detailed information about components. " +
	"You can also access documentation on various topics related to the component library, " +
	"and read any component or topic as Markdown through the component:// and docs:// resources."

// Capabilities lists the protocol features the server offers.
type Capabilities struct {
	Tools     bool `json:"tools"`
	Resources bool `json:"resources"`
}

// Info is the handshake metadata.
type Info struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Instructions string       `json:"instructions"`
	Capabilities Capabilities `json:"capabilities"`
}

func defaultInfo() Info {
	return Info{
		Name:         ServerName,
		Version:      Version,
		Instructions: Instructions,
		Capabilities: Capabilities{Tools: true, Resources: true},
	}
}
