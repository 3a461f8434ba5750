// Package config loads settings for the terminal client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c or -config.
//  3. Command-line flags -a, -prefix and -i.
//
// JSON example:
//
//	{
//	  "server_addr": "http://localhost:8888",
//	  "route_prefix": "/authentication",
//	  "online_check_interval": "3s"
//	}
package config
