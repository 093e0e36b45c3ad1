// Package config loads environment variables into tagged structs using
// github.com/caarlos0/env/v11. A .env file in the working directory is read
// once per process with github.com/joho/godotenv; variables already present in
// the environment win over the file.
//
//	var cfg form.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Extra files and a variable prefix can be supplied with WithEnvFiles and
// WithPrefix.
package config
