package game

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"path"

	"github.com/gonewx/sleighdash/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// SpriteStatus 精灵槽位的加载状态
type SpriteStatus int

const (
	// SpriteUnknown 槽位未在配置中声明
	SpriteUnknown SpriteStatus = iota
	// SpriteLoaded 图片已解码
	SpriteLoaded
	// SpriteMissing 文件缺失或无法解码，渲染层使用占位图形
	SpriteMissing
)

// String 返回状态名称
func (s SpriteStatus) String() string {
	switch s {
	case SpriteLoaded:
		return "loaded"
	case SpriteMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// ErrConfigNotLoaded 在加载资源配置之前访问槽位时返回
var ErrConfigNotLoaded = errors.New("resource config not loaded - call LoadResourceConfig first")

type spriteSlot struct {
	path   string
	status SpriteStatus
	source image.Image
	image  *ebiten.Image
}

// ResourceManager 精灵槽位表
//
// 每个槽位在加载后处于 Loaded 或 Missing 两种状态之一。缺失的精灵只影响外观，
// 模拟层从不读取这里的数据。ebiten 图片在第一次 GetImage 时才创建，
// 加载阶段只做解码，可以在没有图形上下文的环境中运行。
//
// This implementation is NOT thread-safe; load everything on the main goroutine.
type ResourceManager struct {
	config *ResourceConfig
	slots  map[string]*spriteSlot
	order  []string
}

// NewResourceManager creates an empty ResourceManager.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		slots: make(map[string]*spriteSlot),
	}
}

// LoadResourceConfig 从嵌入文件系统读取并解析槽位表
//
// 参数:
//   - configPath: 配置路径（如 "data/resources.yaml"）
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := embedded.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}
	return rm.ParseResourceConfig(data)
}

// ParseResourceConfig 解析 YAML 槽位表并重建映射
// 所有槽位初始为 Missing，直到 LoadAll 成功解码
func (rm *ResourceManager) ParseResourceConfig(data []byte) error {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config: %w", err)
	}

	seen := make(map[string]bool, len(config.Sprites))
	for _, s := range config.Sprites {
		if s.ID == "" || s.Path == "" {
			return fmt.Errorf("failed to parse resource config: sprite entry needs id and path")
		}
		if seen[s.ID] {
			return fmt.Errorf("failed to parse resource config: duplicate sprite id %q", s.ID)
		}
		seen[s.ID] = true
	}

	rm.config = &config
	rm.buildSlotMap()
	return nil
}

// buildSlotMap 根据配置构建 ID -> 完整路径映射
func (rm *ResourceManager) buildSlotMap() {
	rm.slots = make(map[string]*spriteSlot, len(rm.config.Sprites))
	rm.order = rm.order[:0]
	for _, s := range rm.config.Sprites {
		rm.slots[s.ID] = &spriteSlot{
			path:   path.Join(rm.config.BasePath, s.Path),
			status: SpriteMissing,
		}
		rm.order = append(rm.order, s.ID)
	}
}

// LoadAll 尝试解码所有槽位
//
// 单个文件失败不会中断加载，只会把该槽位标记为 Missing。
//
// 返回:
//   - int: 成功加载的槽位数量
//   - error: 配置未加载时返回 ErrConfigNotLoaded
func (rm *ResourceManager) LoadAll() (int, error) {
	if rm.config == nil {
		return 0, ErrConfigNotLoaded
	}

	loaded := 0
	for _, id := range rm.order {
		slot := rm.slots[id]
		img, err := decodeImage(slot.path)
		if err != nil {
			slot.status = SpriteMissing
			slot.source = nil
			slot.image = nil
			log.Printf("[ResourceManager] Sprite %s missing: %v", id, err)
			continue
		}
		slot.status = SpriteLoaded
		slot.source = img
		slot.image = nil
		loaded++
	}
	log.Printf("[ResourceManager] Loaded %d/%d sprites", loaded, len(rm.order))
	return loaded, nil
}

func decodeImage(p string) (image.Image, error) {
	file, err := embedded.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", p, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}
	return img, nil
}

// Status 返回槽位状态
func (rm *ResourceManager) Status(id string) SpriteStatus {
	slot, ok := rm.slots[id]
	if !ok {
		return SpriteUnknown
	}
	return slot.status
}

// IsLoaded 槽位是否可用
func (rm *ResourceManager) IsLoaded(id string) bool {
	return rm.Status(id) == SpriteLoaded
}

// Source 返回解码后的原始图片，缺失时返回 nil
func (rm *ResourceManager) Source(id string) image.Image {
	slot, ok := rm.slots[id]
	if !ok || slot.status != SpriteLoaded {
		return nil
	}
	return slot.source
}

// GetImage 返回槽位对应的 ebiten 图片，缺失时返回 nil
func (rm *ResourceManager) GetImage(id string) *ebiten.Image {
	slot, ok := rm.slots[id]
	if !ok || slot.status != SpriteLoaded {
		return nil
	}
	if slot.image == nil {
		slot.image = ebiten.NewImageFromImage(slot.source)
	}
	return slot.image
}

// LoadedVariants 按给定顺序返回已加载的槽位 ID
// 用于构建礼物精灵池：只有可用的变体才参与抽选
func (rm *ResourceManager) LoadedVariants(ids ...string) []string {
	var out []string
	for _, id := range ids {
		if rm.IsLoaded(id) {
			out = append(out, id)
		}
	}
	return out
}

// SlotIDs 返回配置中声明的全部槽位 ID（声明顺序）
func (rm *ResourceManager) SlotIDs() []string {
	out := make([]string, len(rm.order))
	copy(out, rm.order)
	return out
}

// Path 返回槽位的资源路径（含 base_path），未声明时返回空字符串
func (rm *ResourceManager) Path(id string) string {
	slot, ok := rm.slots[id]
	if !ok {
		return ""
	}
	return slot.path
}
