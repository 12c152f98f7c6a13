// Package hcl provides the HCL implementation of config.Loader. It parses a
// run file, evaluates it with an env() function so secrets can come from the
// environment, and translates the result into a config.RunFile.
//
//	source_dir   = "sql"
//	runs_dir     = "runs"
//	workers      = 8
//	on_failure   = "attempt"
//	task_timeout = "15m"
//
//	connection {
//	  driver    = "databricks"
//	  host      = env("DATABRICKS_SERVER_HOSTNAME")
//	  http_path = env("DATABRICKS_HTTP_PATH")
//	  token     = env("DATABRICKS_TOKEN")
//	  port      = env("DATABRICKS_PORT", "443")
//	}
//
//	graph {
//	  node_color = "#FF3621"
//	  edge_color = "#00A972"
//	}
package hcl
