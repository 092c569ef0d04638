/*
Package config manages configuration loading and validation for thumbfix.

	            +-------------+
	            |   Config    |
	            |  (target)   |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Names the one file to migrate instead of hardcoding it
- Selects which built-in rules run and which paths they accept
- Carries the strict and dry-run switches

🔄 Flow:
1. Load reads the file and picks a parser by extension
2. SetDefaults fills the glob and the rule list
3. ApplyEnv lets THUMBFIX_* variables override the file
4. Validate rejects unknown rules, duplicate rules and bad globs

🔍 Example:

	cfg, err := config.Load(ctx, ".thumbfix.yaml")
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return err
	}
	path, err := cfg.ResolveTarget()
*/
package config
