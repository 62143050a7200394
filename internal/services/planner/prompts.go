package planner

// Промпты для генерации и перевода планов.
// Промпты на английском; язык ответа задаётся отдельно при переводе.

// DebtReductionPromptTemplate - пользователь с долгом: два плана по закрытию долга
const DebtReductionPromptTemplate = `Act as a Strategic Financial Advisor for an Indian household.

User data (monthly, INR):
- Income: ₹%d
- Expenses: ₹%d
- EMI: ₹%d
- Surplus after expenses and EMI: ₹%d
- Total outstanding debt: ₹%d
- Savings: ₹%d
- Financial health: %s (EMI is %.0f%% of income)

MISSION: Generate TWO distinct strategic plans to CLEAR THE DEBT.

SCENARIO "aggressive" (Monk Mode)
- Strategy: 90%% of the surplus goes to EXTRA debt payoff, 10%% to investment.
- Allocation: "extra_debt" ≈ %d, "invest" ≈ %d.
- Goal: become debt-free as fast as possible.
- Title: "🔥 Monk Mode (Aggressive)"
- Desc: "Live lean, kill debt fast."

SCENARIO "balanced" (Smart Growth)
- Strategy: 50%% of the surplus to extra debt payoff, 50%% to investments (SIPs / liquid funds).
- Allocation: "extra_debt" ≈ %d, "invest" ≈ %d.
- Goal: build assets while managing debt.
- Title: "🌱 Smart Balance (Growth)"
- Desc: "Invest while you pay."

REQUIRED JSON STRUCTURE (allocation values are integers in rupees, exactly 4 steps per plan):
{
  "aggressive": {
    "title": "String", "desc": "String",
    "allocation": {"extra_debt": <int>, "invest": <int>},
    "steps": ["Step 1", "Step 2", "Step 3", "Step 4"]
  },
  "balanced": {
    "title": "String", "desc": "String",
    "allocation": {"extra_debt": <int>, "invest": <int>},
    "steps": ["Step 1", "Step 2", "Step 3", "Step 4"]
  }
}`

// WealthBuildingPromptTemplate - пользователь без долга: два плана накопления
const WealthBuildingPromptTemplate = `Act as a Wealth Manager for an Indian household.

User data (monthly, INR):
- Income: ₹%d
- Expenses: ₹%d
- Surplus: ₹%d
- Savings: ₹%d
- Financial health: %s. The user is DEBT FREE.

MISSION: Generate TWO wealth accumulation plans.

SCENARIO "aggressive" (Wealth Accelerator)
- Strategy: high risk, high reward (small cap, crypto, direct equity).
- Allocation: set "extra_debt" to 0. Put 90%% of the surplus into "invest" (≈ %d).
- Title: "🚀 Wealth Accelerator"
- Desc: "Aggressive compounding. High volatility, max returns."

SCENARIO "balanced" (Wealth Fortress)
- Strategy: stability and safety (large cap, gold, debt funds).
- Allocation: set "extra_debt" to 0. Put 60%% of the surplus into "invest" (≈ %d), keep the rest as liquid cash.
- Title: "🛡️ Wealth Fortress"
- Desc: "Steady growth with capital protection."

REQUIRED JSON STRUCTURE (allocation values are integers in rupees, exactly 3 steps per plan):
{
  "aggressive": {
    "title": "String", "desc": "String",
    "allocation": {"extra_debt": 0, "invest": <int>},
    "steps": ["Step 1 (High Growth)", "Step 2", "Step 3"]
  },
  "balanced": {
    "title": "String", "desc": "String",
    "allocation": {"extra_debt": 0, "invest": <int>},
    "steps": ["Step 1 (Balanced)", "Step 2", "Step 3"]
  }
}`

// TranslatePromptTemplate - перевод готового плана в режиме "Dost"
const TranslatePromptTemplate = `Act as a friendly Indian financial guide ("Dost").
Translate the following Financial Plan JSON into "%s".

RULES:
1. Keep the JSON structure EXACTLY the same (keys: aggressive, balanced, title, desc, allocation, extra_debt, invest, steps).
2. Do NOT change any number. Every "allocation" value must stay exactly as it is.
3. Translate only the "title", "desc" and "steps" text.
4. Tone: encouraging, brotherly, light slang (e.g. "Paisa", "Jugaad", "Tension mat lo").

Input JSON:
%s`
