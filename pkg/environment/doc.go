// Package environment names the deployment environments a binary can run in
// and normalises the value read from configuration.
//
//	env := environment.Parse(cfg.Env) // "prod" -> environment.Production
//	log := logger.New(logger.WithEnvironment(env, "totpgate"))
package environment
