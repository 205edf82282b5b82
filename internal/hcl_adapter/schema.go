package hcl_adapter

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Runs      []*hclRun      `hcl:"run,block"`
	Projects  []*hclProject  `hcl:"project,block"`
	Scenarios []*hclScenario `hcl:"scenario,block"`
}

type hclRun struct {
	Version         *int    `hcl:"version,optional"`
	BaseURL         *string `hcl:"base_url,optional"`
	Timeout         *int    `hcl:"timeout,optional"`
	PollInterval    *int    `hcl:"poll_interval,optional"`
	TestIDAttribute *string `hcl:"test_id_attribute,optional"`
}

type hclProject struct {
	Name              string       `hcl:"name,label"`
	Device            *string      `hcl:"device,optional"`
	Browser           *string      `hcl:"browser,optional"`
	UserAgent         *string      `hcl:"user_agent,optional"`
	DeviceScaleFactor *float64     `hcl:"device_scale_factor,optional"`
	IsMobile          *bool        `hcl:"is_mobile,optional"`
	HasTouch          *bool        `hcl:"has_touch,optional"`
	Headless          *bool        `hcl:"headless,optional"`
	Viewport          *hclViewport `hcl:"viewport,block"`
}

type hclViewport struct {
	Width  int `hcl:"width"`
	Height int `hcl:"height"`
}

type hclScenario struct {
	Name    string       `hcl:"name,label"`
	Steps   []*hclStep   `hcl:"step,block"`
	Expects []*hclExpect `hcl:"expect,block"`
}

type hclStep struct {
	Kind   string  `hcl:"kind,label"`
	URL    *string `hcl:"url,optional"`
	TestID *string `hcl:"test_id,optional"`
	Value  *string `hcl:"value,optional"`
}

type hclExpect struct {
	TestID   string `hcl:"test_id"`
	Contains string `hcl:"contains"`
	Negate   *bool  `hcl:"negate,optional"`
}
