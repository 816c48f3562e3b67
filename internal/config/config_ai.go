package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetDetectConfig returns the AI configuration for skill detection with fallback to global config
func (c *Config) GetDetectConfig() OperationAIConfig {
	config := c.AI.Detect
	c.applyOperationDefaults(&config)
	return config
}

// GetInferConfig returns the AI configuration for level inference with fallback to global config
func (c *Config) GetInferConfig() OperationAIConfig {
	config := c.AI.Infer
	c.applyOperationDefaults(&config)
	return config
}

// GetGenerateConfig returns the AI configuration for question generation with fallback to global config
func (c *Config) GetGenerateConfig() OperationAIConfig {
	config := c.AI.Generate
	c.applyOperationDefaults(&config)
	return config
}

// GetJudgeConfig returns the AI configuration for question judging with fallback to global config
func (c *Config) GetJudgeConfig() OperationAIConfig {
	config := c.AI.Judge
	c.applyOperationDefaults(&config)
	return config
}

// AIAvailable reports whether the AI pipeline can be used at all. Without a
// key every component runs its deterministic fallback.
func (c *Config) AIAvailable() bool {
	return c.AI.Enabled && c.AI.APIKey != ""
}
