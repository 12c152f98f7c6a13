package hcl

// fileRoot is the gohcl schema of a run file.
type fileRoot struct {
	SourceDir   *string          `hcl:"source_dir,optional"`
	RunsDir     *string          `hcl:"runs_dir,optional"`
	Workers     *int             `hcl:"workers,optional"`
	OnFailure   *string          `hcl:"on_failure,optional"`
	TaskTimeout *string          `hcl:"task_timeout,optional"`
	DryRun      *bool            `hcl:"dry_run,optional"`
	Connection  *connectionBlock `hcl:"connection,block"`
	Graph       *graphBlock      `hcl:"graph,block"`
}

type connectionBlock struct {
	Driver   string  `hcl:"driver"`
	DSN      *string `hcl:"dsn,optional"`
	Host     *string `hcl:"host,optional"`
	HTTPPath *string `hcl:"http_path,optional"`
	Token    *string `hcl:"token,optional"`
	Port     *int    `hcl:"port,optional"`
}

type graphBlock struct {
	NodeColor *string `hcl:"node_color,optional"`
	EdgeColor *string `hcl:"edge_color,optional"`
}
