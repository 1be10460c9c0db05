package presenter

// Title is the dashboard headline.
const Title = "CoDGithubApp: Chain of Draft Implementation"

// Heading introduces the main panel.
const Heading = "Chain of Draft: Minimalist Reasoning Strategy"

// Description explains the Chain of Draft strategy.
const Description = "The Chain of Draft (CoD) is a concise reasoning strategy inspired by human cognitive processes. " +
	"It focuses on generating minimalistic yet informative intermediate reasoning outputs while solving tasks."

// DeploymentTips are shown beneath every dashboard surface.
var DeploymentTips = []string{
	"Ensure you have the necessary model APIs and credentials for querying LLMs.",
	"Tune the token limit and task complexity parameters based on your specific needs.",
	"Consider deploying the app on a server with sufficient resources to handle model inference.",
	"Utilize caching mechanisms to reduce latency for repeated queries.",
}
