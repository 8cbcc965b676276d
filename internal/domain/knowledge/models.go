package knowledge

// Module 领导力模块
type Module struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Section     string `json:"section" yaml:"section"`
	Content     string `json:"content,omitempty" yaml:"content,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Section 按章节分组的模块
type Section struct {
	Name    string
	Modules []Module
}

// GroupBySection 按章节分组，保持章节首次出现的顺序
func GroupBySection(modules []Module) []Section {
	index := make(map[string]int)
	var sections []Section
	for _, m := range modules {
		i, ok := index[m.Section]
		if !ok {
			i = len(sections)
			index[m.Section] = i
			sections = append(sections, Section{Name: m.Section})
		}
		sections[i].Modules = append(sections[i].Modules, m)
	}
	return sections
}

// Summary 模块摘要：优先使用正文，缺失时使用描述
func (m Module) Summary() string {
	if m.Content != "" {
		return m.Content
	}
	return m.Description
}
