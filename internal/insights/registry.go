package insights

// ArgSpec describes one tool argument.
type ArgSpec struct {
	Name        string
	Type        string // "string", "number" or "boolean"
	Description string
	Required    bool
}

// ToolSpec describes one exposed tool: a GET proxy to a single insights
// endpoint. Args are emitted to the query in declaration order.
type ToolSpec struct {
	Name        string
	Description string
	Endpoint    string // path segment under /insights/
	Args        []ArgSpec
	Defaults    []Default
}

// ArgNames returns the argument names in declaration order.
func (t ToolSpec) ArgNames() []string {
	names := make([]string, len(t.Args))
	for i, a := range t.Args {
		names[i] = a.Name
	}
	return names
}

// Shared argument definitions. Every analysis endpoint takes the same
// search scope: keywords and/or an IPC classification, optionally narrowed
// by filing/publication windows and authority. None are marked required —
// the upstream API enforces "keywords or ipc" itself.
var (
	argKeywords = ArgSpec{
		Name:        "keywords",
		Type:        "string",
		Description: "Technology keywords to analyze. Provide keywords, an IPC classification, or both.",
	}
	argIPC = ArgSpec{
		Name:        "ipc",
		Type:        "string",
		Description: "IPC classification code, e.g. H04M. Provide keywords, an IPC classification, or both.",
	}
	argApplyStart = ArgSpec{
		Name:        "apply_start_time",
		Type:        "string",
		Description: "Earliest application (filing) year, four digits, e.g. 2015.",
	}
	argApplyEnd = ArgSpec{
		Name:        "apply_end_time",
		Type:        "string",
		Description: "Latest application (filing) year, four digits.",
	}
	argPublicStart = ArgSpec{
		Name:        "public_start_time",
		Type:        "string",
		Description: "Earliest publication year, four digits.",
	}
	argPublicEnd = ArgSpec{
		Name:        "public_end_time",
		Type:        "string",
		Description: "Latest publication year, four digits.",
	}
	argAuthority = ArgSpec{
		Name:        "authority",
		Type:        "string",
		Description: "Patent authority to restrict the analysis to, e.g. CN, US, EP, JP.",
	}
	argLang = ArgSpec{
		Name:        "lang",
		Type:        "string",
		Description: "Language of analysis labels, en or cn. Defaults to en.",
	}
)

var langDefault = []Default{{Key: "lang", Value: "en"}}

var fieldArgs = []ArgSpec{argKeywords, argIPC, argLang}

var registry = []ToolSpec{
	{
		Name:        "get_patent_trends",
		Description: "Annual application and grant trends for patents matching the given keywords or IPC classification.",
		Endpoint:    "patent-trends",
		Args: []ArgSpec{
			argKeywords, argIPC,
			argApplyStart, argApplyEnd,
			argPublicStart, argPublicEnd,
			argAuthority, argLang,
		},
		Defaults: langDefault,
	},
	{
		Name:        "get_word_cloud",
		Description: "Snapshot of the most frequent keywords and phrases across patents in a technology field.",
		Endpoint:    "word-cloud",
		Args:        fieldArgs,
		Defaults:    langDefault,
	},
	{
		Name:        "get_wheel_of_innovation",
		Description: "Two-level hierarchical breakdown of the technologies that make up a field (wheel of innovation).",
		Endpoint:    "wheel-of-innovation",
		Args:        fieldArgs,
		Defaults:    langDefault,
	},
	{
		Name:        "get_priority_country",
		Description: "Distribution of priority countries, showing where inventions in the field are first filed.",
		Endpoint:    "priority-country",
		Args: []ArgSpec{
			argKeywords, argIPC,
			argApplyStart, argApplyEnd,
			argAuthority, argLang,
		},
		Defaults: langDefault,
	},
	{
		Name:        "get_most_cited_patents",
		Description: "Patents in the field most cited by later filings, a proxy for foundational inventions.",
		Endpoint:    "most-cited",
		Args:        fieldArgs,
		Defaults:    langDefault,
	},
	{
		Name:        "get_inventor_ranking",
		Description: "Most prolific inventors in the field ranked by patent count.",
		Endpoint:    "inventor-ranking",
		Args:        fieldArgs,
		Defaults:    langDefault,
	},
	{
		Name:        "get_applicant_ranking",
		Description: "Top applicant organizations in the field ranked by patent count.",
		Endpoint:    "applicant-ranking",
		Args:        fieldArgs,
		Defaults:    langDefault,
	},
	{
		Name:        "get_simple_legal_status",
		Description: "Breakdown of patents in the field by simple legal status: active, inactive or pending.",
		Endpoint:    "simple-legal-status",
		Args:        fieldArgs,
		Defaults:    langDefault,
	},
	{
		Name:        "get_most_asserted_patents",
		Description: "Patents in the field most frequently asserted in litigation.",
		Endpoint:    "most-asserted",
		Args:        fieldArgs,
		Defaults:    langDefault,
	},
}

// Registry returns the static tool table in its declared order.
func Registry() []ToolSpec {
	return registry
}

// Lookup finds a tool by name.
func Lookup(name string) (ToolSpec, bool) {
	for _, t := range registry {
		if t.Name == name {
			return t, true
		}
	}
	return ToolSpec{}, false
}
