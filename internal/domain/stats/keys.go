package stats

// Stat keys. The vocabulary is case-sensitive and matches the game data files.
const (
	KeyAtkChar          = "ATK_CHAR"
	KeyAtkPet           = "ATK_PET"
	KeyAtkBase          = "ATK_BASE"
	KeyFormation        = "Formation"
	KeyPotentialPet     = "Potential_PET"
	KeyBuffAtk          = "BUFF_ATK"
	KeyBuffAtkPet       = "BUFF_ATK_PET"
	KeySkillDmg         = "SKILL_DMG"
	KeyCritDmg          = "CRIT_DMG"
	KeyBonusCritDmg     = "Bonus_Crit_DMG"
	KeyWeakDmg          = "WEAK_DMG"
	KeyDmgAmpBuff       = "DMG_AMP_BUFF"
	KeyDmgAmpDebuff     = "DMG_AMP_DEBUFF"
	KeyDmgReduction     = "DMG_Reduction"
	KeyDefTarget        = "DEF_Target"
	KeyDefBuff          = "DEF_BUFF"
	KeyDefReduce        = "DEF_REDUCE"
	KeyIgnoreDef        = "Ignore_DEF"
	KeyHPTarget         = "HP_Target"
	KeyBonusDmgHPTarget = "Bonus_DMG_HP_Target"
	KeyCapAtkPercent    = "Cap_ATK_Percent"
	KeyTargetHPPercent  = "Target_HP_Percent"
	KeyHPAbove50Bonus   = "HP_Above_50_Bonus"
	KeyHPBelow50Bonus   = "HP_Below_50_Bonus"
	KeyWeaponSet        = "Weapon_Set"
)
