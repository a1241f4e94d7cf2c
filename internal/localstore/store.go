package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// 两个相互独立的本地条目，只写入不读取业务逻辑
const (
	KeyUserPreferences  = "userPreferences"
	KeyReminderSettings = "reminderSettings"
)

// ErrNotFound 在条目不存在时返回
var ErrNotFound = errors.New("local entry not found")

// Store 以 JSON 形式保存按用户划分的键值条目
type Store struct {
	d *diskv.Diskv
}

// Open 在 basePath 下创建存储，目录不存在时由 diskv 自动创建
func Open(basePath string) *Store {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		basePath = "data/local"
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      256 * 1024,
	})}
}

// keyToPath 把 "u1/reminderSettings" 映射到 u1/reminderSettings.json
func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	last := len(parts) - 1
	return &diskv.PathKey{Path: parts[:last], FileName: parts[last] + ".json"}
}

func pathToKey(pk *diskv.PathKey) string {
	name := strings.TrimSuffix(pk.FileName, ".json")
	if len(pk.Path) == 0 {
		return name
	}
	return strings.Join(pk.Path, "/") + "/" + name
}

func scopedKey(userID int, key string) string {
	return "u" + strconv.Itoa(userID) + "/" + key
}

// Put 覆盖写入用户的某个条目
func (s *Store) Put(userID int, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.d.Write(scopedKey(userID, key), data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Get 读取用户的某个条目，不存在时返回 ErrNotFound
func (s *Store) Get(userID int, key string, dst any) error {
	data, err := s.d.Read(scopedKey(userID, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Has 判断条目是否存在
func (s *Store) Has(userID int, key string) bool {
	return s.d.Has(scopedKey(userID, key))
}
